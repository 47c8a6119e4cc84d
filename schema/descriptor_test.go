package schema

import "testing"

func TestDescriptorKind_String(t *testing.T) {
	tests := []struct {
		kind DescriptorKind
		want string
	}{
		{KindScalar, "Scalar"},
		{KindList, "List"},
		{KindObject, "Object"},
		{DescriptorKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("DescriptorKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScalarKind_String(t *testing.T) {
	tests := []struct {
		kind ScalarKind
		want string
	}{
		{ScalarString, "String"},
		{ScalarInt, "Int"},
		{ScalarFloat, "Float"},
		{ScalarBoolean, "Boolean"},
		{ScalarJSON, "JSON"},
		{ScalarKind(999), "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ScalarKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScalarConstructors(t *testing.T) {
	tests := []struct {
		name string
		fn   func() *ScalarDescriptor
		want ScalarKind
	}{
		{"String", String, ScalarString},
		{"Int", Int, ScalarInt},
		{"Float", Float, ScalarFloat},
		{"Boolean", Boolean, ScalarBoolean},
		{"JSON", JSON, ScalarJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.fn()
			if d.Scalar != tt.want {
				t.Errorf("%s().Scalar = %v, want %v", tt.name, d.Scalar, tt.want)
			}
			if d.Kind() != KindScalar {
				t.Errorf("%s().Kind() = %v, want KindScalar", tt.name, d.Kind())
			}
			if d.TypeName() != "" {
				t.Errorf("%s().TypeName() = %q, want empty", tt.name, d.TypeName())
			}
		})
	}
}

func TestObjectDescriptor(t *testing.T) {
	obj := &ObjectDescriptor{
		Name: "UsersType",
		Fields: []FieldDescriptor{
			{Name: "id", Type: Int()},
			{Name: "tags", Type: List(String())},
		},
	}

	if obj.Kind() != KindObject {
		t.Errorf("Kind() = %v, want KindObject", obj.Kind())
	}
	if obj.TypeName() != "UsersType" {
		t.Errorf("TypeName() = %q, want UsersType", obj.TypeName())
	}
	if f := obj.Field("tags"); f == nil || f.Type.Kind() != KindList {
		t.Errorf("Field(tags) = %+v, want list field", f)
	}
	if f := obj.Field("missing"); f != nil {
		t.Errorf("Field(missing) = %+v, want nil", f)
	}
}
