package zen

import "github.com/unrealkit/usmap/internal/binary"

// ExportCommandType orders the two passes the loader runs over a
// bundle's exports.
type ExportCommandType uint8

const (
	// ExportCommandCreate constructs the export object.
	ExportCommandCreate ExportCommandType = iota
	// ExportCommandSerialize fills it from serialized data.
	ExportCommandSerialize
)

func (t ExportCommandType) String() string {
	switch t {
	case ExportCommandCreate:
		return "Create"
	case ExportCommandSerialize:
		return "Serialize"
	default:
		return "Create"
	}
}

// ExportBundleHeader locates one bundle's slice of the entry array.
type ExportBundleHeader struct {
	FirstEntryIndex uint32
	EntryCount      uint32
}

// ReadExportBundleHeader decodes an export bundle header.
func ReadExportBundleHeader(r *binary.Reader) (ExportBundleHeader, error) {
	first, err := r.ReadU32()
	if err != nil {
		return ExportBundleHeader{}, r.WrapError("export bundle header", err)
	}
	count, err := r.ReadU32()
	if err != nil {
		return ExportBundleHeader{}, r.WrapError("export bundle header", err)
	}
	return ExportBundleHeader{FirstEntryIndex: first, EntryCount: count}, nil
}

// ExportBundleEntry is one loader command, packed on the wire into a
// single word: the command in the top two bits, the export index below.
type ExportBundleEntry struct {
	LocalExportIndex uint32
	CommandType      ExportCommandType
}

// ReadExportBundleEntry decodes a packed export bundle entry.
// Unassigned command bits fall back to the create pass.
func ReadExportBundleEntry(r *binary.Reader) (ExportBundleEntry, error) {
	raw, err := r.ReadU32()
	if err != nil {
		return ExportBundleEntry{}, r.WrapError("export bundle entry", err)
	}

	command := ExportCommandCreate
	if raw>>30 == 1 {
		command = ExportCommandSerialize
	}
	return ExportBundleEntry{
		LocalExportIndex: raw & 0x3FFFFFFF,
		CommandType:      command,
	}, nil
}

// DependencyBundleHeader prefixes a package's dependency entries from
// 5.3 on. EntryCount holds the four create/serialize pair counts in
// command order.
type DependencyBundleHeader struct {
	FirstEntryIndex int32
	EntryCount      [4]uint32
}

// Total sums the pair counts.
func (h DependencyBundleHeader) Total() uint32 {
	var total uint32
	for _, c := range h.EntryCount {
		total += c
	}
	return total
}

// ReadDependencyBundleHeader decodes a dependency bundle header.
func ReadDependencyBundleHeader(r *binary.Reader) (DependencyBundleHeader, error) {
	first, err := r.ReadI32()
	if err != nil {
		return DependencyBundleHeader{}, r.WrapError("dependency bundle header", err)
	}
	h := DependencyBundleHeader{FirstEntryIndex: first}
	for i := range h.EntryCount {
		c, err := r.ReadU32()
		if err != nil {
			return DependencyBundleHeader{}, r.WrapError("dependency bundle header", err)
		}
		h.EntryCount[i] = c
	}
	return h, nil
}

// DependencyBundleEntry names one import or export the bundle depends
// on, by package-local index.
type DependencyBundleEntry struct {
	LocalImportOrExportIndex int32
}

// ReadDependencyBundleEntry decodes a dependency bundle entry.
func ReadDependencyBundleEntry(r *binary.Reader) (DependencyBundleEntry, error) {
	idx, err := r.ReadI32()
	if err != nil {
		return DependencyBundleEntry{}, r.WrapError("dependency bundle entry", err)
	}
	return DependencyBundleEntry{LocalImportOrExportIndex: idx}, nil
}
