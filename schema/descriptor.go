// Package schema infers GraphQL type descriptors from example JSON and
// compiles a set of endpoints into a mock schema definition.
//
// Descriptors form a small sealed hierarchy: scalars, lists and object
// shapes. Only the top-level object of an endpoint response gets a name;
// objects nested below it stay inline and surface as the JSON scalar.
package schema

// DescriptorKind identifies the category of a type descriptor.
type DescriptorKind int

const (
	KindScalar DescriptorKind = iota // String, Int, Float, Boolean or JSON
	KindList                         // Ordered collection of one element type
	KindObject                       // Object shape with ordered fields
)

// String returns the string representation of the descriptor kind.
func (k DescriptorKind) String() string {
	switch k {
	case KindScalar:
		return "Scalar"
	case KindList:
		return "List"
	case KindObject:
		return "Object"
	default:
		return "Unknown"
	}
}

// TypeDescriptor is the base interface for all type descriptors.
type TypeDescriptor interface {
	// Kind returns the descriptor kind for type switching.
	Kind() DescriptorKind

	// TypeName returns the declared name of this type.
	// Returns "" for scalars, lists and inline objects.
	TypeName() string

	// Ensure only types in this package can implement TypeDescriptor.
	sealed()
}

// exprBase provides zero-value implementations for descriptors that never
// carry a name.
type exprBase struct{}

func (exprBase) TypeName() string { return "" }
func (exprBase) sealed()          {}

// ListDescriptor represents a JSON array. Element is inferred from a single
// representative sample, so heterogeneous arrays lose the shape of later
// elements.
type ListDescriptor struct {
	exprBase

	// Element is the list element type.
	Element TypeDescriptor
}

// Kind returns KindList.
func (d *ListDescriptor) Kind() DescriptorKind { return KindList }

// List returns a ListDescriptor for the given element type.
func List(element TypeDescriptor) *ListDescriptor {
	return &ListDescriptor{Element: element}
}

// ObjectDescriptor represents a JSON object shape.
//
// Name is set only for the per-endpoint types declared by Compile. Inline
// objects (Name == "") render as the JSON scalar in SDL but keep their
// fields so mock values can follow the sample's shape.
type ObjectDescriptor struct {
	// Name is the declared GraphQL type name, e.g. "UsersType".
	Name string

	// Fields are in the sample object's own key order.
	Fields []FieldDescriptor
}

// Kind returns KindObject.
func (d *ObjectDescriptor) Kind() DescriptorKind { return KindObject }

// TypeName returns the object's declared name, or "" for inline objects.
func (d *ObjectDescriptor) TypeName() string { return d.Name }

func (*ObjectDescriptor) sealed() {}

// Field looks up a field by name. Returns nil if not found.
func (d *ObjectDescriptor) Field(name string) *FieldDescriptor {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// FieldDescriptor is a single named field within an object shape.
type FieldDescriptor struct {
	Name string
	Type TypeDescriptor
}
