package schema

import "testing"

func TestFieldName(t *testing.T) {
	tests := []struct {
		route string
		want  string
	}{
		{"/users", "users"},
		{"/api/v1/users", "api_v1_users"},
		{"/orders/:id", "orders_id"},
		{"/a--b", "a_b"},
		{"/snake_case", "snake_case"},
		{"/trailing/", "trailing_"},
		{"/", ""},
		{"//double", "_double"},
	}
	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			if got := FieldName(tt.route); got != tt.want {
				t.Errorf("FieldName(%q) = %q, want %q", tt.route, got, tt.want)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		field string
		want  string
	}{
		{"users", "UsersType"},
		{"api_v1_users", "Api_v1_usersType"},
		{"Users", "UsersType"},
		{"", "Type"},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if got := TypeName(tt.field); got != tt.want {
				t.Errorf("TypeName(%q) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}
