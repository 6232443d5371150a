package mappings

import "fmt"

// PropertyType is the wire tag of a property payload.
type PropertyType uint8

// Property type tags in wire order.
const (
	TypeByte PropertyType = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeObject
	TypeName
	TypeDelegate
	TypeDouble
	TypeArray
	TypeStruct
	TypeStr
	TypeText
	TypeInterface
	TypeMulticastDelegate
	TypeWeakObject
	TypeLazyObject
	TypeAssetObject
	TypeSoftObject
	TypeUInt64
	TypeUInt32
	TypeUInt16
	TypeInt64
	TypeInt16
	TypeInt8
	TypeMap
	TypeSet
	TypeEnum
	TypeFieldPath

	// TypeUnknown marks a property the dumper could not classify.
	TypeUnknown PropertyType = 0xFF
)

var propertyTypeNames = [...]string{
	TypeByte:              "ByteProperty",
	TypeBool:              "BoolProperty",
	TypeInt:               "IntProperty",
	TypeFloat:             "FloatProperty",
	TypeObject:            "ObjectProperty",
	TypeName:              "NameProperty",
	TypeDelegate:          "DelegateProperty",
	TypeDouble:            "DoubleProperty",
	TypeArray:             "ArrayProperty",
	TypeStruct:            "StructProperty",
	TypeStr:               "StrProperty",
	TypeText:              "TextProperty",
	TypeInterface:         "InterfaceProperty",
	TypeMulticastDelegate: "MulticastDelegateProperty",
	TypeWeakObject:        "WeakObjectProperty",
	TypeLazyObject:        "LazyObjectProperty",
	TypeAssetObject:       "AssetObjectProperty",
	TypeSoftObject:        "SoftObjectProperty",
	TypeUInt64:            "UInt64Property",
	TypeUInt32:            "UInt32Property",
	TypeUInt16:            "UInt16Property",
	TypeInt64:             "Int64Property",
	TypeInt16:             "Int16Property",
	TypeInt8:              "Int8Property",
	TypeMap:               "MapProperty",
	TypeSet:               "SetProperty",
	TypeEnum:              "EnumProperty",
	TypeFieldPath:         "FieldPathProperty",
}

// String returns the engine spelling of the type.
func (t PropertyType) String() string {
	if int(t) < len(propertyTypeNames) {
		return propertyTypeNames[t]
	}
	if t == TypeUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("PropertyType(0x%02x)", uint8(t))
}

// valid reports whether t is a tag this decoder understands.
func (t PropertyType) valid() bool {
	return t <= TypeFieldPath || t == TypeUnknown
}

// PropertyData is the decoded payload of one property: its type tag and
// the references the composite kinds carry.
type PropertyData struct {
	Type   PropertyType
	Struct string        // TypeStruct: name of the referenced schema
	Enum   string        // TypeEnum: name of the referenced enum
	Inner  *PropertyData // TypeArray, TypeSet, TypeEnum element payload
	Key    *PropertyData // TypeMap key payload
	Value  *PropertyData // TypeMap value payload
}

// String renders the payload with its references, e.g.
// "MapProperty<NameProperty, StructProperty(Vector)>".
func (d *PropertyData) String() string {
	if d == nil {
		return "?"
	}
	switch d.Type {
	case TypeStruct:
		return fmt.Sprintf("StructProperty(%s)", d.Struct)
	case TypeEnum:
		return fmt.Sprintf("EnumProperty(%s)", d.Enum)
	case TypeArray:
		return fmt.Sprintf("ArrayProperty<%s>", d.Inner)
	case TypeSet:
		return fmt.Sprintf("SetProperty<%s>", d.Inner)
	case TypeMap:
		return fmt.Sprintf("MapProperty<%s, %s>", d.Key, d.Value)
	default:
		return d.Type.String()
	}
}

// Property is one flattened property slot of a schema. Fixed-size array
// declarations expand into ArraySize consecutive slots that share a name
// and payload but carry distinct ArrayIndex and SchemaIndex values.
type Property struct {
	Name        string
	SchemaIndex uint16 // slot within the owning schema
	ArrayIndex  uint16 // ordinal within a fixed-size array expansion
	ArraySize   uint8  // declared element count, 1 for scalars
	Data        PropertyData
}
