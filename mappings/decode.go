package mappings

import (
	stderrors "errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/unrealkit/usmap/compression"
	"github.com/unrealkit/usmap/container"
	"github.com/unrealkit/usmap/errors"
	"github.com/unrealkit/usmap/internal/binary"
)

// maxPropertyDepth bounds payload nesting. Real dumps stay in single
// digits; anything deeper is a malformed file, not data.
const maxPropertyDepth = 64

// Parse decodes a .usmap mapping file. Decoding is all-or-nothing: on any
// error no partial MappingFile is returned.
func Parse(data []byte) (*MappingFile, error) {
	r := binary.NewReader(data)

	magic, err := r.ReadU16()
	if err != nil {
		return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	if magic != Magic {
		return nil, errors.New(errors.PhaseHeader, errors.KindInvalidFormat).
			Detail("bad magic 0x%04X", magic).
			Build()
	}

	versionByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}

	m := &MappingFile{}
	switch {
	case versionByte == 0:
		// Injected-dumper variant: narrow widths, no versioning block.
		m.Unofficial = true
		m.Version = VersionInitial
	case Version(versionByte) >= VersionLatestPlusOne:
		return nil, errors.UnknownVersion(versionByte)
	default:
		m.Version = Version(versionByte)
	}

	if !m.Unofficial {
		hasVersioning := m.Version >= VersionPackageVersioning
		if hasVersioning {
			flag, err := r.ReadBool()
			if err != nil {
				return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
			}
			hasVersioning = flag
		}
		if hasVersioning {
			if err := parseVersioning(r, m); err != nil {
				return nil, err
			}
		}
	}

	methodByte, err := r.ReadByte()
	if err != nil {
		return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	m.Compression = compression.Method(methodByte)

	compressedSize, err := r.ReadU32()
	if err != nil {
		return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	decompressedSize, err := r.ReadU32()
	if err != nil {
		return nil, errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}

	body, err := r.ReadBytes(int(compressedSize))
	if err != nil {
		return nil, errors.Truncated(errors.PhaseDecompress, r.Position(), err)
	}
	payload, err := compression.Decompress(m.Compression, body, decompressedSize)
	if err != nil {
		return nil, err
	}

	Logger().Debug("mapping header decoded",
		zap.String("version", m.Version.String()),
		zap.Bool("unofficial", m.Unofficial),
		zap.String("compression", m.Compression.String()),
		zap.Uint32("compressed_size", compressedSize),
		zap.Uint32("decompressed_size", decompressedSize))

	pr := binary.NewReader(payload)
	if err := parseNames(pr, m); err != nil {
		return nil, err
	}
	if err := parseEnums(pr, m); err != nil {
		return nil, err
	}
	if err := parseSchemas(pr, m); err != nil {
		return nil, err
	}
	if err := parseExtensions(pr, m); err != nil {
		return nil, err
	}

	return m, nil
}

// longNameLengths reports whether name lengths take two bytes.
func (m *MappingFile) longNameLengths() bool {
	return !m.Unofficial && m.Version >= VersionLongFName
}

// largeEnumCounts reports whether enum member counts take two bytes.
func (m *MappingFile) largeEnumCounts() bool {
	return !m.Unofficial && m.Version >= VersionLargeEnums
}

func parseVersioning(r *binary.Reader, m *MappingFile) error {
	ov, err := r.ReadI32()
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	m.ObjectVersion = ObjectVersion(ov)

	ov5, err := r.ReadI32()
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	m.ObjectVersionUE5 = ObjectVersionUE5(ov5)

	count, err := r.ReadI32()
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	if count < 0 {
		return errors.New(errors.PhaseHeader, errors.KindInvalidFormat).
			Detail("negative custom version count %d", count).
			Build()
	}
	m.CustomVersions = make([]CustomVersion, 0, capHint(uint32(count), r))
	for i := int32(0); i < count; i++ {
		guid, err := r.ReadGUID()
		if err != nil {
			return errors.Truncated(errors.PhaseHeader, r.Position(), err)
		}
		ver, err := r.ReadI32()
		if err != nil {
			return errors.Truncated(errors.PhaseHeader, r.Position(), err)
		}
		m.CustomVersions = append(m.CustomVersions, CustomVersion{GUID: guid, Version: ver})
	}

	netCL, err := r.ReadU32()
	if err != nil {
		return errors.Truncated(errors.PhaseHeader, r.Position(), err)
	}
	m.NetCL = netCL
	return nil
}

func parseNames(r *binary.Reader, m *MappingFile) error {
	count, err := r.ReadU32()
	if err != nil {
		return sectionError(errors.PhaseNames, r, err)
	}

	m.Names = make([]string, 0, capHint(count, r))
	for i := uint32(0); i < count; i++ {
		var length int
		if m.longNameLengths() {
			v, err := r.ReadU16()
			if err != nil {
				return sectionError(errors.PhaseNames, r, err)
			}
			length = int(v)
		} else {
			v, err := r.ReadByte()
			if err != nil {
				return sectionError(errors.PhaseNames, r, err)
			}
			length = int(v)
		}

		name, err := r.ReadName(length)
		if err != nil {
			return sectionError(errors.PhaseNames, r, err)
		}
		m.Names = append(m.Names, name)
	}

	Logger().Debug("name table decoded", zap.Int("names", len(m.Names)))
	return nil
}

func parseEnums(r *binary.Reader, m *MappingFile) error {
	count, err := r.ReadU32()
	if err != nil {
		return sectionError(errors.PhaseEnums, r, err)
	}

	m.Enums = container.NewWithCapacity[string, []string](capHint(count, r))
	for i := uint32(0); i < count; i++ {
		name, err := readNameRef(r, m, errors.PhaseEnums)
		if err != nil {
			return err
		}

		var members int
		if m.largeEnumCounts() {
			v, err := r.ReadU16()
			if err != nil {
				return sectionError(errors.PhaseEnums, r, err)
			}
			members = int(v)
		} else {
			v, err := r.ReadByte()
			if err != nil {
				return sectionError(errors.PhaseEnums, r, err)
			}
			members = int(v)
		}

		values := make([]string, 0, members)
		for j := 0; j < members; j++ {
			member, err := readNameRef(r, m, errors.PhaseEnums)
			if err != nil {
				return err
			}
			values = append(values, member)
		}
		m.Enums.Insert(name, values)
	}

	Logger().Debug("enum table decoded", zap.Int("enums", m.Enums.Len()))
	return nil
}

func parseSchemas(r *binary.Reader, m *MappingFile) error {
	count, err := r.ReadU32()
	if err != nil {
		return sectionError(errors.PhaseSchemas, r, err)
	}

	m.Schemas = container.NewWithCapacity[string, *Schema](capHint(count, r))
	for i := uint32(0); i < count; i++ {
		s, err := parseSchema(r, m)
		if err != nil {
			return err
		}
		m.Schemas.Insert(s.Name, s)
	}

	Logger().Debug("schema table decoded", zap.Int("schemas", m.Schemas.Len()))
	return nil
}

func parseSchema(r *binary.Reader, m *MappingFile) (*Schema, error) {
	name, err := readNameRef(r, m, errors.PhaseSchemas)
	if err != nil {
		return nil, err
	}
	superType, err := readNameRef(r, m, errors.PhaseSchemas)
	if err != nil {
		return nil, err
	}
	propCount, err := r.ReadU16()
	if err != nil {
		return nil, sectionError(errors.PhaseSchemas, r, err)
	}
	serialized, err := r.ReadU16()
	if err != nil {
		return nil, sectionError(errors.PhaseSchemas, r, err)
	}

	s := &Schema{
		Name:       name,
		SuperType:  superType,
		PropCount:  propCount,
		Properties: container.NewWithCapacity[PropertyKey, *Property](int(serialized)),
	}
	for i := 0; i < int(serialized); i++ {
		if err := parseProperty(r, m, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func parseProperty(r *binary.Reader, m *MappingFile, s *Schema) error {
	schemaIndex, err := r.ReadU16()
	if err != nil {
		return sectionError(errors.PhaseSchemas, r, err)
	}
	arraySize, err := r.ReadByte()
	if err != nil {
		return sectionError(errors.PhaseSchemas, r, err)
	}
	name, err := readNameRef(r, m, errors.PhaseSchemas)
	if err != nil {
		return err
	}
	data, err := parsePropertyData(r, m, 0)
	if err != nil {
		return err
	}

	// A fixed-size array record occupies arraySize consecutive slots.
	for i := uint16(0); i < uint16(arraySize); i++ {
		p := &Property{
			Name:        name,
			SchemaIndex: schemaIndex + i,
			ArrayIndex:  i,
			ArraySize:   arraySize,
			Data:        *data,
		}
		s.Properties.Insert(PropertyKey{Name: name, Index: uint32(schemaIndex + i)}, p)
	}
	return nil
}

func parsePropertyData(r *binary.Reader, m *MappingFile, depth int) (*PropertyData, error) {
	if depth > maxPropertyDepth {
		return nil, errors.New(errors.PhaseSchemas, errors.KindInvalidFormat).
			Offset(r.Position()).
			Detail("property nesting deeper than %d", maxPropertyDepth).
			Build()
	}

	tag, err := r.ReadByte()
	if err != nil {
		return nil, sectionError(errors.PhaseSchemas, r, err)
	}
	t := PropertyType(tag)
	if !t.valid() {
		return nil, errors.New(errors.PhaseSchemas, errors.KindInvalidFormat).
			Offset(r.Position() - 1).
			Detail("property type tag 0x%02x", tag).
			Build()
	}

	switch t {
	case TypeEnum:
		inner, err := parsePropertyData(r, m, depth+1)
		if err != nil {
			return nil, err
		}
		name, err := readNameRef(r, m, errors.PhaseSchemas)
		if err != nil {
			return nil, err
		}
		return &PropertyData{Type: t, Inner: inner, Enum: name}, nil

	case TypeStruct:
		name, err := readNameRef(r, m, errors.PhaseSchemas)
		if err != nil {
			return nil, err
		}
		return &PropertyData{Type: t, Struct: name}, nil

	case TypeSet, TypeArray:
		inner, err := parsePropertyData(r, m, depth+1)
		if err != nil {
			return nil, err
		}
		return &PropertyData{Type: t, Inner: inner}, nil

	case TypeMap:
		key, err := parsePropertyData(r, m, depth+1)
		if err != nil {
			return nil, err
		}
		value, err := parsePropertyData(r, m, depth+1)
		if err != nil {
			return nil, err
		}
		return &PropertyData{Type: t, Key: key, Value: value}, nil

	default:
		return &PropertyData{Type: t}, nil
	}
}

func parseExtensions(r *binary.Reader, m *MappingFile) error {
	// The dumper variant never writes extensions; trailing bytes are noise.
	if m.Unofficial || r.Remaining() == 0 {
		return nil
	}

	flags, err := r.ReadU32()
	if err != nil {
		return sectionError(errors.PhaseExtension, r, err)
	}
	m.ExtensionFlags = ExtensionFlags(flags)
	if unknown := m.ExtensionFlags &^ extensionKnown; unknown != 0 {
		return errors.New(errors.PhaseExtension, errors.KindInvalidExtensionData).
			Detail("unknown extension flags 0x%08x", uint32(unknown)).
			Build()
	}

	if m.ExtensionFlags.Has(ExtensionPaths) {
		if err := parseModulePaths(r, m); err != nil {
			return err
		}
	}
	return nil
}

func parseModulePaths(r *binary.Reader, m *MappingFile) error {
	numPaths, err := r.ReadU16()
	if err != nil {
		return sectionError(errors.PhaseExtension, r, err)
	}

	paths := make([]string, numPaths)
	for i := range paths {
		s, err := r.ReadFString()
		if err != nil {
			return sectionError(errors.PhaseExtension, r, err)
		}
		paths[i] = s
	}

	// One index per schema, in table order. The index width follows the
	// path count.
	wide := numPaths > 255
	for _, s := range m.Schemas.Values() {
		var idx int
		if wide {
			v, err := r.ReadU16()
			if err != nil {
				return sectionError(errors.PhaseExtension, r, err)
			}
			idx = int(v)
		} else {
			v, err := r.ReadByte()
			if err != nil {
				return sectionError(errors.PhaseExtension, r, err)
			}
			idx = int(v)
		}
		if idx >= int(numPaths) {
			return errors.New(errors.PhaseExtension, errors.KindInvalidExtensionData).
				Detail("path index %d out of range (%d paths)", idx, numPaths).
				Build()
		}
		path := paths[idx]
		s.ModulePath = &path
	}

	Logger().Debug("module paths assigned",
		zap.Int("paths", int(numPaths)),
		zap.Int("schemas", m.Schemas.Len()))
	return nil
}

// readNameRef resolves an i32 name-table reference. Negative references
// mean the empty string; indexes past the table fail the decode.
// Instance-numbered names arrive pre-rendered in the table, see
// InstancedName for the separator convention.
func readNameRef(r *binary.Reader, m *MappingFile, phase errors.Phase) (string, error) {
	idx, err := r.ReadI32()
	if err != nil {
		return "", sectionError(phase, r, err)
	}
	if idx < 0 {
		return "", nil
	}
	if int64(idx) >= int64(len(m.Names)) {
		return "", errors.OutOfBounds(phase, "name", int(idx), len(m.Names))
	}
	return m.Names[idx], nil
}

// InstancedName renders a name carrying an FName instance number with the
// conventional underscore separator: number zero is the bare name, number
// N renders as base_{N-1}.
func InstancedName(base string, number uint32) string {
	if number == 0 {
		return base
	}
	return base + "_" + strconv.FormatUint(uint64(number-1), 10)
}

// capHint bounds a wire-declared element count by the bytes actually
// remaining, so corrupt counts cannot drive allocation.
func capHint(count uint32, r *binary.Reader) int {
	hint := int(count)
	if rem := r.Remaining(); hint > rem {
		hint = rem
	}
	return hint
}

// sectionError maps low-level reader failures onto their structured kinds.
func sectionError(phase errors.Phase, r *binary.Reader, err error) error {
	switch {
	case stderrors.Is(err, binary.ErrShortRead):
		return errors.Truncated(phase, r.Position(), err)
	case stderrors.Is(err, binary.ErrInvalidUTF8):
		return errors.New(phase, errors.KindInvalidEncoding).
			Offset(r.Position()).
			Cause(err).
			Detail("name is not valid UTF-8").
			Build()
	}
	var e *errors.Error
	if stderrors.As(err, &e) {
		return err
	}
	return errors.Wrap(phase, errors.KindInvalidFormat, err, "")
}
