// Package usmap reads Unreal Engine .usmap type-mapping files and answers
// property lookups against the reflection data they carry.
//
// A .usmap file is the portable snapshot of an engine build's property
// system: every struct and class (a schema), its ancestor, its properties
// in declaration order, and every enum with its members. Cooked assets
// serialized with unversioned properties cannot be read without it.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	usmap/               Root package with the Decompressor contract
//	├── mappings/        .usmap decoding and property resolution
//	├── compression/     Payload compression methods (Brotli, ZStandard, Oodle)
//	├── container/       Insertion-ordered, key-addressable collections
//	├── zen/             Zen package and IoStore container records
//	├── errors/          Structured decode errors (phase + kind)
//	└── cmd/usmapinfo/   Inspector CLI with an interactive browser
//
// # Quick Start
//
// Decode a file and resolve a property:
//
//	data, err := os.ReadFile("Mappings.usmap")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	m, err := mappings.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	prop, index, ok := m.PropertyWithDuplicationIndex(
//	    "bReplicates", mappings.Ancestry{"Character", "Pawn", "Actor"}, 0)
//	if ok {
//	    fmt.Println(prop.Data.Type, index)
//	}
//
// # Compression
//
// Brotli and ZStandard payloads decode out of the box. The proprietary
// Oodle codec is not bundled; install one with compression.RegisterOodle
// before decoding files that need it.
//
// # Thread Safety
//
// A decoded MappingFile is immutable and safe for concurrent readers.
// Decoding itself is single-threaded.
package usmap
