package zen

import (
	"github.com/unrealkit/usmap/internal/binary"
	"github.com/unrealkit/usmap/mappings"
)

// MappedName is a packed reference into a name table. The top bit of
// Index selects the global table over the package-local one; Number
// carries the FName instance number.
type MappedName struct {
	Index  uint32
	Number uint32
}

const mappedNameGlobalBit = 0x80000000

// IsGlobal reports whether the reference targets the global name table.
func (n MappedName) IsGlobal() bool {
	return n.Index&mappedNameGlobalBit != 0
}

// NameIndex returns the table index with the global bit cleared.
func (n MappedName) NameIndex() uint32 {
	return n.Index &^ mappedNameGlobalBit
}

// Render resolves the reference against a name table and applies the
// instance number. It reports false when the index is past the table.
func (n MappedName) Render(names []string) (string, bool) {
	idx := n.NameIndex()
	if uint64(idx) >= uint64(len(names)) {
		return "", false
	}
	return mappings.InstancedName(names[idx], n.Number), true
}

func readMappedName(r *binary.Reader) (MappedName, error) {
	index, err := r.ReadU32()
	if err != nil {
		return MappedName{}, err
	}
	number, err := r.ReadU32()
	if err != nil {
		return MappedName{}, err
	}
	return MappedName{Index: index, Number: number}, nil
}

// PackageFlags mirrors the engine's package flag bits. Only a subset
// matters to cooked Zen packages; the spellings follow the engine.
type PackageFlags uint32

const (
	PKG_None                       PackageFlags = 0x00000000
	PKG_NewlyCreated               PackageFlags = 0x00000001
	PKG_ClientOptional             PackageFlags = 0x00000002
	PKG_ServerSideOnly             PackageFlags = 0x00000004
	PKG_CompiledIn                 PackageFlags = 0x00000010
	PKG_ForDiffing                 PackageFlags = 0x00000020
	PKG_EditorOnly                 PackageFlags = 0x00000040
	PKG_Developer                  PackageFlags = 0x00000080
	PKG_UncookedOnly               PackageFlags = 0x00000100
	PKG_Cooked                     PackageFlags = 0x00000200
	PKG_ContainsNoAsset            PackageFlags = 0x00000400
	PKG_UnversionedProperties      PackageFlags = 0x00002000
	PKG_ContainsMapData            PackageFlags = 0x00004000
	PKG_Compiling                  PackageFlags = 0x00010000
	PKG_ContainsMap                PackageFlags = 0x00020000
	PKG_RequiresLocalizationGather PackageFlags = 0x00040000
	PKG_PlayInEditor               PackageFlags = 0x00100000
	PKG_ContainsScript             PackageFlags = 0x00200000
	PKG_DisallowExport             PackageFlags = 0x00400000
	PKG_DynamicImports             PackageFlags = 0x10000000
	PKG_RuntimeGenerated           PackageFlags = 0x20000000
	PKG_ReloadingForCooker         PackageFlags = 0x40000000
	PKG_FilterEditorOnly           PackageFlags = 0x80000000
)

// Has reports whether every bit of flag is set.
func (f PackageFlags) Has(flag PackageFlags) bool {
	return f&flag == flag
}

// NeedsMappings reports whether the package serialized its exports
// without per-property tags, leaving a mappings file as the only way to
// interpret them.
func (f PackageFlags) NeedsMappings() bool {
	return f.Has(PKG_UnversionedProperties)
}

// PackageSummary is the fixed header of a cooked Zen package. All
// offsets are relative to the start of the header.
type PackageSummary struct {
	HasVersioningInfo uint32 // nonzero when a versioning block follows
	HeaderSize        uint32
	Name              MappedName
	PackageFlags      PackageFlags
	CookedHeaderSize  uint32

	ImportedPublicExportHashesOffset int32
	ImportMapOffset                  int32
	ExportMapOffset                  int32
	ExportBundleEntriesOffset        int32

	// GraphDataOffset is populated for pre-5.3 packages; the three
	// below replace it from 5.3 on. The unused side stays zero.
	GraphDataOffset int32

	DependencyBundleHeadersOffset int32
	DependencyBundleEntriesOffset int32
	ImportedPackageNamesOffset    int32
}

// ReadPackageSummary decodes a Zen package summary. ue53Plus selects the
// tail layout: 5.3 dropped the graph-data offset in favor of dependency
// bundles and imported package names.
func ReadPackageSummary(r *binary.Reader, ue53Plus bool) (*PackageSummary, error) {
	const section = "package summary"

	s := &PackageSummary{}
	var err error
	if s.HasVersioningInfo, err = r.ReadU32(); err != nil {
		return nil, r.WrapError(section, err)
	}
	if s.HeaderSize, err = r.ReadU32(); err != nil {
		return nil, r.WrapError(section, err)
	}
	if s.Name, err = readMappedName(r); err != nil {
		return nil, r.WrapError(section, err)
	}
	flags, err := r.ReadU32()
	if err != nil {
		return nil, r.WrapError(section, err)
	}
	s.PackageFlags = PackageFlags(flags)
	if s.CookedHeaderSize, err = r.ReadU32(); err != nil {
		return nil, r.WrapError(section, err)
	}

	if s.ImportedPublicExportHashesOffset, err = r.ReadI32(); err != nil {
		return nil, r.WrapError(section, err)
	}
	if s.ImportMapOffset, err = r.ReadI32(); err != nil {
		return nil, r.WrapError(section, err)
	}
	if s.ExportMapOffset, err = r.ReadI32(); err != nil {
		return nil, r.WrapError(section, err)
	}
	if s.ExportBundleEntriesOffset, err = r.ReadI32(); err != nil {
		return nil, r.WrapError(section, err)
	}

	if ue53Plus {
		if s.DependencyBundleHeadersOffset, err = r.ReadI32(); err != nil {
			return nil, r.WrapError(section, err)
		}
		if s.DependencyBundleEntriesOffset, err = r.ReadI32(); err != nil {
			return nil, r.WrapError(section, err)
		}
		if s.ImportedPackageNamesOffset, err = r.ReadI32(); err != nil {
			return nil, r.WrapError(section, err)
		}
	} else {
		if s.GraphDataOffset, err = r.ReadI32(); err != nil {
			return nil, r.WrapError(section, err)
		}
	}
	return s, nil
}
