package schema

// ScalarKind identifies a GraphQL scalar.
type ScalarKind int

const (
	ScalarString ScalarKind = iota
	ScalarInt
	ScalarFloat
	ScalarBoolean
	ScalarJSON // custom scalar for objects not worth naming
)

// ScalarKinds lists every scalar kind in declaration order.
var ScalarKinds = []ScalarKind{ScalarString, ScalarInt, ScalarFloat, ScalarBoolean, ScalarJSON}

// String returns the GraphQL name of the scalar.
func (k ScalarKind) String() string {
	switch k {
	case ScalarString:
		return "String"
	case ScalarInt:
		return "Int"
	case ScalarFloat:
		return "Float"
	case ScalarBoolean:
		return "Boolean"
	case ScalarJSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// ScalarDescriptor represents a leaf value.
type ScalarDescriptor struct {
	exprBase
	Scalar ScalarKind
}

// Kind returns KindScalar.
func (d *ScalarDescriptor) Kind() DescriptorKind { return KindScalar }

// Convenience constructors.

// String returns a ScalarDescriptor for String.
func String() *ScalarDescriptor { return &ScalarDescriptor{Scalar: ScalarString} }

// Int returns a ScalarDescriptor for Int.
func Int() *ScalarDescriptor { return &ScalarDescriptor{Scalar: ScalarInt} }

// Float returns a ScalarDescriptor for Float.
func Float() *ScalarDescriptor { return &ScalarDescriptor{Scalar: ScalarFloat} }

// Boolean returns a ScalarDescriptor for Boolean.
func Boolean() *ScalarDescriptor { return &ScalarDescriptor{Scalar: ScalarBoolean} }

// JSON returns a ScalarDescriptor for the JSON escape-hatch scalar.
func JSON() *ScalarDescriptor { return &ScalarDescriptor{Scalar: ScalarJSON} }
