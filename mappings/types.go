package mappings

import (
	"github.com/unrealkit/usmap/compression"
	"github.com/unrealkit/usmap/container"
)

// Schema describes one struct or class: its ancestor and its properties
// in declaration order.
type Schema struct {
	Name      string
	SuperType string // empty when the type has no ancestor

	// PropCount is the declared number of flattened property slots. It
	// legitimately differs from Properties.Len(): fixed-size arrays take
	// several slots, and dumpers skip entries they cannot express.
	PropCount uint16

	// ModulePath is the script package path carried by the extension
	// section, nil when the file has none.
	ModulePath *string

	Properties *container.IndexedMap[PropertyKey, *Property]
}

// PropertyKey addresses one flattened property slot within a schema.
// Index equals the record's SchemaIndex, which doubles as the
// duplication index during resolution.
type PropertyKey struct {
	Name  string
	Index uint32
}

// MappingFile is a decoded .usmap file. It is immutable once Parse
// returns and safe for concurrent readers.
type MappingFile struct {
	Version    Version
	Unofficial bool // written by an injected dumper rather than engine tooling

	Names   []string
	Enums   *container.IndexedMap[string, []string]
	Schemas *container.IndexedMap[string, *Schema]

	ExtensionFlags ExtensionFlags

	// Engine versioning, present only when the header carried the block.
	ObjectVersion    ObjectVersion
	ObjectVersionUE5 ObjectVersionUE5
	CustomVersions   []CustomVersion
	NetCL            uint32

	Compression compression.Method
}
