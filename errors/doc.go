// Package errors provides the structured error type for the usmap library.
//
// Errors are categorized by Phase (the decode stage that failed) and Kind
// (a closed set of failure categories). Decoding is all-or-nothing, so any
// error from this package means no usable mapping data was produced.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseSchemas, errors.KindInvalidFormat).
//		Offset(pos).
//		Detail("property type tag 0x%02x", tag).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownVersion(9)
//	err := errors.Truncated(errors.PhaseNames, pos, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As. An empty Phase or Kind on the comparison target acts as a
// wildcard, so matching on kind alone works:
//
//	errors.Is(err, &errors.Error{Kind: errors.KindTruncatedInput})
package errors
