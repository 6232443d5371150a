// Package mappings decodes .usmap type-mapping files and resolves
// properties against the schema inheritance they describe.
//
// # File Format
//
// A mapping file starts with a small header: a magic number, a format
// version byte, an optional engine-versioning block, a compression method,
// and the compressed and decompressed payload sizes. The payload holds
// three tables:
//
//	names    deduplicated UTF-8 strings, referenced by index everywhere else
//	enums    enum name plus member names, in declaration order
//	schemas  one entry per struct/class: ancestor, slot count, properties
//
// Official files may append an extension section carrying per-schema
// module paths. A separate unofficial variant (version byte zero) is
// produced by injected dumpers; it uses narrow length fields and never
// carries versioning or extension data.
//
// # Parsing
//
//	m, err := mappings.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(m.Version, m.Schemas.Len())
//
// Decoding is all-or-nothing: any failure returns a structured error from
// the errors package and no partial MappingFile.
//
// # Resolution
//
// Unversioned property serialization identifies a property by name, an
// ancestry chain, and a duplication index. Resolution walks the chain:
//
//	prop, index, ok := m.PropertyWithDuplicationIndex(
//	    "AttachParent", mappings.Ancestry{"SceneComponent", "ActorComponent"}, 0)
//
// The returned index is global across the schema chain: the sum of the
// declared slot counts of every schema walked past, plus the slot of the
// match. Lookup misses are reported through the ok result, never as
// errors.
package mappings
