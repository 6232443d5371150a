package zen

import "bytes"

// AssetFormat identifies how a cooked asset byte stream is laid out.
type AssetFormat int

const (
	// FormatTraditional is the classic serialized package, opening with
	// the big-endian asset magic.
	FormatTraditional AssetFormat = iota
	// FormatZenPackage is the cooked Zen package header.
	FormatZenPackage
	// FormatIoStore is a raw IoStore container. Containers carry their
	// own table of contents and are never inferred from package bytes.
	FormatIoStore
)

func (f AssetFormat) String() string {
	switch f {
	case FormatTraditional:
		return "Traditional"
	case FormatZenPackage:
		return "ZenPackage"
	case FormatIoStore:
		return "IoStore"
	default:
		return "Unknown"
	}
}

// Traditional packages open with these four bytes; Zen summaries start
// with a has-versioning word that can never collide with them.
var assetMagic = []byte{0xC1, 0x83, 0x2A, 0x9E}

// DetectFormat classifies asset bytes by their leading magic. Anything
// not opening with the traditional tag is reported as a Zen package;
// FormatIoStore is never returned here.
func DetectFormat(data []byte) AssetFormat {
	if len(data) >= 4 && bytes.Equal(data[:4], assetMagic) {
		return FormatTraditional
	}
	return FormatZenPackage
}
