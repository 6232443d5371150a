package mappings_test

import (
	"testing"

	"github.com/unrealkit/usmap/mappings"
)

func TestVersionString(t *testing.T) {
	tests := []struct {
		v    mappings.Version
		want string
	}{
		{mappings.VersionInitial, "Initial"},
		{mappings.VersionPackageVersioning, "PackageVersioning"},
		{mappings.VersionLongFName, "LongFName"},
		{mappings.VersionLargeEnums, "LargeEnums"},
		{mappings.Version(9), "Version(9)"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("Version(%d).String() = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPropertyTypeString(t *testing.T) {
	tests := []struct {
		t    mappings.PropertyType
		want string
	}{
		{mappings.TypeByte, "ByteProperty"},
		{mappings.TypeBool, "BoolProperty"},
		{mappings.TypeSoftObject, "SoftObjectProperty"},
		{mappings.TypeFieldPath, "FieldPathProperty"},
		{mappings.TypeUnknown, "Unknown"},
		{mappings.PropertyType(0x30), "PropertyType(0x30)"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("PropertyType(%d).String() = %q, want %q", uint8(tt.t), got, tt.want)
		}
	}
}

func TestPropertyDataString(t *testing.T) {
	vector := &mappings.PropertyData{Type: mappings.TypeStruct, Struct: "Vector"}
	tests := []struct {
		data *mappings.PropertyData
		want string
	}{
		{nil, "?"},
		{&mappings.PropertyData{Type: mappings.TypeInt}, "IntProperty"},
		{vector, "StructProperty(Vector)"},
		{&mappings.PropertyData{Type: mappings.TypeEnum, Enum: "ECharClass"}, "EnumProperty(ECharClass)"},
		{
			&mappings.PropertyData{Type: mappings.TypeArray, Inner: vector},
			"ArrayProperty<StructProperty(Vector)>",
		},
		{
			&mappings.PropertyData{
				Type:  mappings.TypeSet,
				Inner: &mappings.PropertyData{Type: mappings.TypeName},
			},
			"SetProperty<NameProperty>",
		},
		{
			&mappings.PropertyData{
				Type:  mappings.TypeMap,
				Key:   &mappings.PropertyData{Type: mappings.TypeName},
				Value: vector,
			},
			"MapProperty<NameProperty, StructProperty(Vector)>",
		},
		{&mappings.PropertyData{Type: mappings.TypeArray}, "ArrayProperty<?>"},
	}
	for _, tt := range tests {
		if got := tt.data.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestExtensionFlagsHas(t *testing.T) {
	var f mappings.ExtensionFlags
	if f.Has(mappings.ExtensionPaths) {
		t.Error("empty flags report paths")
	}
	f = mappings.ExtensionPaths
	if !f.Has(mappings.ExtensionPaths) {
		t.Error("paths flag not reported")
	}
}

func TestInstancedName(t *testing.T) {
	tests := []struct {
		base   string
		number uint32
		want   string
	}{
		{"Actor", 0, "Actor"},
		{"Actor", 1, "Actor_0"},
		{"Actor", 11, "Actor_10"},
		{"", 3, "_2"},
	}
	for _, tt := range tests {
		if got := mappings.InstancedName(tt.base, tt.number); got != tt.want {
			t.Errorf("InstancedName(%q, %d) = %q, want %q", tt.base, tt.number, got, tt.want)
		}
	}
}
