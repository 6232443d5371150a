// Package binary provides the little-endian cursor reader shared by the
// mappings and zen decoders.
package binary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
)

// Read failures returned by Reader.
var (
	ErrShortRead   = errors.New("short read")
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in string")
)

// Reader is a position-tracking cursor over an in-memory buffer. All
// multi-byte reads are little-endian.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a new Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte position.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// ReadByte reads a single byte and advances the position.
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.data) {
		return 0, ErrShortRead
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadBool reads a single byte; any nonzero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

// ReadBytes reads exactly n bytes.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > len(r.data)-r.pos {
		return nil, ErrShortRead
	}
	buf := make([]byte, n)
	copy(buf, r.data[r.pos:r.pos+n])
	r.pos += n
	return buf, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	buf, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	buf, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// ReadI32 reads a little-endian int32.
func (r *Reader) ReadI32() (int32, error) {
	v, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// ReadGUID reads a 16-byte GUID in its on-disk byte order.
func (r *Reader) ReadGUID() (uuid.UUID, error) {
	buf, err := r.ReadBytes(16)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.FromBytes(buf)
	if err != nil {
		return uuid.UUID{}, err
	}
	return id, nil
}

// ReadName reads an n-byte UTF-8 name. The length prefix is read by the
// caller since its width varies by format version.
func (r *Reader) ReadName(n int) (string, error) {
	data, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", r.wrapError(ErrInvalidUTF8)
	}
	return string(data), nil
}

// ReadFString reads an engine-serialized string: an i32 length, zero for
// empty, positive for UTF-8 bytes, negative for UTF-16LE code units. The
// count includes a trailing terminator which is dropped. Malformed UTF-16
// sequences decode to the replacement rune.
func (r *Reader) ReadFString() (string, error) {
	length, err := r.ReadI32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}

	if length < 0 {
		units := -int(length)
		data, err := r.ReadBytes(units * 2)
		if err != nil {
			return "", err
		}
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		decoded, err := dec.Bytes(data[:(units-1)*2])
		if err != nil {
			return "", r.wrapError(ErrInvalidUTF8)
		}
		return string(decoded), nil
	}

	data, err := r.ReadBytes(int(length))
	if err != nil {
		return "", err
	}
	content := data[:length-1]
	if !utf8.Valid(content) {
		return "", r.wrapError(ErrInvalidUTF8)
	}
	return string(content), nil
}

func (r *Reader) wrapError(err error) error {
	return fmt.Errorf("at position %d: %w", r.pos, err)
}

// ParseError represents an error during binary parsing with position
// information.
type ParseError struct {
	Err      error
	Section  string
	Position int
}

func (e *ParseError) Error() string {
	if e.Section != "" {
		return fmt.Sprintf("usmap: %s at position %d: %v", e.Section, e.Position, e.Err)
	}
	return fmt.Sprintf("usmap: at position %d: %v", e.Position, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WrapError creates a ParseError with the current position.
func (r *Reader) WrapError(section string, err error) error {
	return &ParseError{
		Position: r.pos,
		Section:  section,
		Err:      err,
	}
}
