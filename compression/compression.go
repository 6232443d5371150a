// Package compression implements the payload compression methods used by
// mapping files.
package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"

	"github.com/unrealkit/usmap"
	"github.com/unrealkit/usmap/errors"
)

// Method identifies how a mapping payload is compressed.
type Method uint8

const (
	MethodNone      Method = 0
	MethodOodle     Method = 1
	MethodBrotli    Method = 2
	MethodZStandard Method = 3
	MethodUnknown   Method = 0xFF
)

// String returns the method name as spelled by dump tooling.
func (m Method) String() string {
	switch m {
	case MethodNone:
		return "None"
	case MethodOodle:
		return "Oodle"
	case MethodBrotli:
		return "Brotli"
	case MethodZStandard:
		return "ZStandard"
	case MethodUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("Method(0x%02x)", uint8(m))
	}
}

// oodle is the registered decoder for the proprietary codec. None is
// bundled; selecting MethodOodle without a registration fails with
// unsupported_compression.
var oodle usmap.Decompressor

// RegisterOodle installs a decoder for MethodOodle payloads.
// This must be called before the first decode that needs it.
func RegisterOodle(d usmap.Decompressor) {
	oodle = d
}

// Decompress expands src according to m. size is the declared
// decompressed size from the file header. The method set is closed; any
// other tag value fails before decompression is attempted.
func Decompress(m Method, src []byte, size uint32) ([]byte, error) {
	switch m {
	case MethodNone:
		return decompressNone(src, size)
	case MethodOodle:
		return decompressOodle(src, size)
	case MethodBrotli:
		return decompressBrotli(src, size)
	case MethodZStandard:
		return decompressZStandard(src, size)
	default:
		return nil, errors.UnsupportedCompression(uint8(m))
	}
}

func decompressNone(src []byte, size uint32) ([]byte, error) {
	if uint32(len(src)) != size {
		return nil, errors.SizeMismatch(uint32(len(src)), size)
	}
	return src, nil
}

func decompressOodle(src []byte, size uint32) ([]byte, error) {
	if oodle == nil {
		return nil, errors.UnsupportedCompression(uint8(MethodOodle))
	}
	out, err := oodle.Decompress(src, size)
	if err != nil {
		return nil, errors.DecompressionFailed("oodle", err)
	}
	if out == nil {
		return nil, errors.New(errors.PhaseDecompress, errors.KindDecompressionFailed).
			Detail("oodle decoder returned no data").
			Build()
	}
	return out, nil
}

func decompressBrotli(src []byte, size uint32) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, size))
	if _, err := io.Copy(buf, brotli.NewReader(bytes.NewReader(src))); err != nil {
		return nil, errors.DecompressionFailed("brotli", err)
	}
	return buf.Bytes(), nil
}

func decompressZStandard(src []byte, size uint32) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.DecompressionFailed("zstandard", err)
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, make([]byte, 0, size))
	if err != nil {
		return nil, errors.DecompressionFailed("zstandard", err)
	}
	return out, nil
}
