package mappings

// Magic identifies a .usmap file (first two bytes, little-endian).
const Magic uint16 = 0x30C4

// ExtensionFlags is the bitset announcing which extension payloads follow
// the schema table in official files.
type ExtensionFlags uint32

const (
	ExtensionNone ExtensionFlags = 0

	// ExtensionPaths adds a module path list and one path index per schema.
	ExtensionPaths ExtensionFlags = 1 << 0

	// extensionKnown masks every flag this decoder understands.
	extensionKnown = ExtensionPaths
)

// Has reports whether all bits of flag are set.
func (f ExtensionFlags) Has(flag ExtensionFlags) bool {
	return f&flag == flag
}
