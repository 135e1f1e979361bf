package trace

import "github.com/simon-lentz/tracegraph/ctf/fieldpath"

// ByteOrder is the field class's own declared byte order, independent of
// the packet header byte order detected for the enclosing metadata stream
// ("Field class variants").
type ByteOrder uint8

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (o ByteOrder) String() string {
	if o == BigEndian {
		return "be"
	}
	return "le"
}

// FieldClassKind discriminates the field class tagged union ("Field
// class variants".
type FieldClassKind uint8

const (
	FieldInteger FieldClassKind = iota
	FieldFloat
	FieldString
	FieldStruct
	FieldStaticArray
	FieldDynamicArray
	FieldVariant
	FieldEnum
)

func (k FieldClassKind) String() string {
	switch k {
	case FieldInteger:
		return "integer"
	case FieldFloat:
		return "floating_point"
	case FieldString:
		return "string"
	case FieldStruct:
		return "struct"
	case FieldStaticArray:
		return "static-array"
	case FieldDynamicArray:
		return "dynamic-array"
	case FieldVariant:
		return "variant"
	case FieldEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Member is one named, ordered field of a struct field class, carrying its
// own alignment ("structure: ordered named members with per-member
// alignment").
type Member struct {
	Name      string
	Class     *FieldClass
	Alignment int
}

// VariantOption is one named alternative of a variant field class.
type VariantOption struct {
	Name  string
	Class *FieldClass
}

// EnumRange maps a label to an inclusive integer range (a single value has
// Low == High), per "enumeration ... label -> range map".
type EnumRange struct {
	Label string
	Low   int64
	High  int64
}

// FieldClass is the tagged union ("Field class variants"): exactly one
// group of fields below is meaningful, selected by Kind, following the
// design note to model tagged variants as one discriminant with one
// payload per kind rather than a type hierarchy.
type FieldClass struct {
	Kind FieldClassKind

	// FieldInteger, and the underlying integer of FieldEnum.
	BitWidth    int
	Alignment   int
	Order       ByteOrder
	Signed      bool
	Base        int // display base: 2, 8, 10 or 16
	MappedClock string // clock class name, "" if this integer maps no clock

	// FieldFloat
	ExponentBits int
	MantissaBits int

	// FieldStruct
	Members []Member

	// FieldStaticArray
	Length  int64
	Element *FieldClass

	// FieldDynamicArray: length resolved to an integer field strictly
	// earlier in scope order.
	LengthPath fieldpath.Path

	// FieldVariant: selector resolved the same way; Options are ordered.
	TagPath fieldpath.Path
	Options []VariantOption

	// FieldEnum
	Ranges []EnumRange
}

// Member looks up a direct struct member by name, implementing
// [fieldpath.Resolvable]. Non-struct kinds have no members.
func (f *FieldClass) Member(name string) (fieldpath.Resolvable, bool) {
	if f == nil || f.Kind != FieldStruct {
		return nil, false
	}
	for _, m := range f.Members {
		if m.Name == name {
			return m.Class, true
		}
	}
	return nil, false
}

// IsInteger implements [fieldpath.Resolvable]. The IR builder accepts only
// FieldInteger leaves as dynamic-array length targets; variant selector
// targets are resolved without a kind check.
func (f *FieldClass) IsInteger() bool {
	return f != nil && f.Kind == FieldInteger
}

// EnumLabel returns the label whose range contains v, and whether one was
// found.
func (f *FieldClass) EnumLabel(v int64) (string, bool) {
	if f == nil || f.Kind != FieldEnum {
		return "", false
	}
	for _, r := range f.Ranges {
		if v >= r.Low && v <= r.High {
			return r.Label, true
		}
	}
	return "", false
}
