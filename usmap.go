package usmap

// Decompressor expands a compressed mapping payload to its declared size.
type Decompressor interface {
	Decompress(src []byte, size uint32) ([]byte, error)
}

// DecompressorFunc adapts a plain function to the Decompressor interface.
type DecompressorFunc func(src []byte, size uint32) ([]byte, error)

// Decompress calls f.
func (f DecompressorFunc) Decompress(src []byte, size uint32) ([]byte, error) {
	return f(src, size)
}
