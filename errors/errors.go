package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Phase indicates where in the decode pipeline the error occurred.
type Phase string

const (
	PhaseHeader     Phase = "header"     // magic, version, compression header
	PhaseDecompress Phase = "decompress" // payload expansion
	PhaseNames      Phase = "names"      // name table
	PhaseEnums      Phase = "enums"      // enum table
	PhaseSchemas    Phase = "schemas"    // schema and property records
	PhaseExtension  Phase = "extension"  // trailing extension section
)

// Kind categorizes the error.
type Kind string

const (
	KindInvalidFormat          Kind = "invalid_format"
	KindUnknownVersion         Kind = "unknown_version"
	KindUnsupportedCompression Kind = "unsupported_compression"
	KindDecompressionFailed    Kind = "decompression_failed"
	KindSizeMismatch           Kind = "size_mismatch"
	KindInvalidEncoding        Kind = "invalid_encoding"
	KindTruncatedInput         Kind = "truncated_input"
	KindInvalidExtensionData   Kind = "invalid_extension_data"
)

// Error is the structured error type used throughout the decoder.
// Offset is the byte position within the failing section; negative means
// unknown.
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Offset int
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Offset >= 0 {
		fmt.Fprintf(&b, " at offset %d", e.Offset)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Phase or Kind on
// the target acts as a wildcard, so errors.Is(err, &Error{Kind: k})
// matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	if t.Kind != "" && t.Kind != e.Kind {
		return false
	}
	return true
}

// IsKind reports whether err or any error it wraps is an *Error of the
// given kind.
func IsKind(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind, Offset: -1})
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}

// Builder provides structured error construction.
type Builder struct {
	err Error
}

// New creates a new error builder.
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: -1,
		},
	}
}

// Offset sets the byte position within the failing section.
func (b *Builder) Offset(pos int) *Builder {
	b.err.Offset = pos
	return b
}

// Cause sets the underlying error.
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message.
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error.
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// InvalidFormat creates an invalid format error.
func InvalidFormat(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidFormat,
		Detail: detail,
		Offset: -1,
	}
}

// UnknownVersion creates an unknown version error.
func UnknownVersion(version byte) *Error {
	return &Error{
		Phase:  PhaseHeader,
		Kind:   KindUnknownVersion,
		Detail: fmt.Sprintf("unrecognized format version %d", version),
		Offset: -1,
	}
}

// UnsupportedCompression creates an unsupported compression error.
func UnsupportedCompression(method byte) *Error {
	return &Error{
		Phase:  PhaseHeader,
		Kind:   KindUnsupportedCompression,
		Detail: fmt.Sprintf("compression method 0x%02x not supported", method),
		Offset: -1,
	}
}

// DecompressionFailed creates a decompression failure error.
func DecompressionFailed(method string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecompress,
		Kind:   KindDecompressionFailed,
		Detail: method,
		Cause:  cause,
		Offset: -1,
	}
}

// SizeMismatch creates a size mismatch error for uncompressed payloads.
func SizeMismatch(compressed, decompressed uint32) *Error {
	return &Error{
		Phase:  PhaseDecompress,
		Kind:   KindSizeMismatch,
		Detail: fmt.Sprintf("stored size %d does not match declared size %d", compressed, decompressed),
		Offset: -1,
	}
}

// InvalidEncoding creates an invalid text encoding error. A preview of
// the offending bytes is included in the detail.
func InvalidEncoding(phase Phase, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidEncoding,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
		Offset: -1,
	}
}

// Truncated creates a truncated input error.
func Truncated(phase Phase, offset int, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncatedInput,
		Detail: "unexpected end of input",
		Cause:  cause,
		Offset: offset,
	}
}

// InvalidExtension creates a malformed extension data error.
func InvalidExtension(detail string) *Error {
	return &Error{
		Phase:  PhaseExtension,
		Kind:   KindInvalidExtensionData,
		Detail: detail,
		Offset: -1,
	}
}

// OutOfBounds creates an invalid format error for an index past the end
// of a table.
func OutOfBounds(phase Phase, what string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidFormat,
		Detail: fmt.Sprintf("%s index %d out of bounds (length %d)", what, index, length),
		Offset: -1,
	}
}

// Wrap wraps an existing error with phase and kind context.
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
		Offset: -1,
	}
}
