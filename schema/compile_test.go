package schema

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/broady/mockql/config"
)

func endpoints(t *testing.T, pairs ...string) []config.Endpoint {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatal("endpoints requires name/response pairs")
	}
	var out []config.Endpoint
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, config.Endpoint{Name: pairs[i], Response: json.RawMessage(pairs[i+1])})
	}
	return out
}

func TestCompile_UsersExample(t *testing.T) {
	c, err := Compile(endpoints(t, "/users", `[{"id":1,"name":"Ann"}]`))
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	users := c.FindType("UsersType")
	if users == nil {
		t.Fatal("expected UsersType to be declared")
	}
	if len(users.Fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(users.Fields))
	}
	if users.Fields[0].Name != "id" || TypeRef(users.Fields[0].Type) != "Int" {
		t.Errorf("field 0 = %s: %s, want id: Int", users.Fields[0].Name, TypeRef(users.Fields[0].Type))
	}
	if users.Fields[1].Name != "name" || TypeRef(users.Fields[1].Type) != "String" {
		t.Errorf("field 1 = %s: %s, want name: String", users.Fields[1].Name, TypeRef(users.Fields[1].Type))
	}

	field := c.FindField("users")
	if field == nil {
		t.Fatal("expected Query.users")
	}
	if got := TypeRef(field.Type); got != "[UsersType]" {
		t.Errorf("Query.users type = %s, want [UsersType]", got)
	}
	if field.Route != "/users" {
		t.Errorf("Query.users route = %q, want /users", field.Route)
	}

	want := `scalar JSON

type UsersType {
  id: Int
  name: String
}

type Query {
  users: [UsersType]
}
`
	if c.SDL() != want {
		t.Errorf("SDL mismatch:\n got:\n%s\nwant:\n%s", c.SDL(), want)
	}
}

func TestCompile_ResponseShapes(t *testing.T) {
	tests := []struct {
		name      string
		route     string
		response  string
		wantField string
		wantType  string // declared type name, "" when none
	}{
		{"object", "/profile", `{"id":1}`, "ProfileType", "ProfileType"},
		{"array of objects", "/users", `[{"id":1}]`, "[UsersType]", "UsersType"},
		{"empty array", "/items", `[]`, "[JSON]", ""},
		{"empty object", "/meta", `{}`, "JSON", ""},
		{"array of empty objects", "/things", `[{}]`, "[JSON]", ""},
		{"leading null element", "/rows", `[null,{"a":true}]`, "[RowsType]", "RowsType"},
		{"scalar", "/count", `3`, "Int", ""},
		{"string", "/motd", `"hello"`, "String", ""},
		{"null", "/nothing", `null`, "String", ""},
		{"array of scalars", "/scores", `[1.5,2]`, "[Float]", ""},
		{"nested arrays", "/grid", `[[1,2],[3]]`, "[[Int]]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Compile(endpoints(t, tt.route, tt.response))
			if err != nil {
				t.Fatalf("Compile() error: %v", err)
			}
			field := c.FindField(FieldName(tt.route))
			if field == nil {
				t.Fatalf("expected Query field for %s", tt.route)
			}
			if got := TypeRef(field.Type); got != tt.wantField {
				t.Errorf("field type = %s, want %s", got, tt.wantField)
			}
			if tt.wantType == "" {
				if len(c.Types) != 0 {
					t.Errorf("expected no named types, got %d", len(c.Types))
				}
			} else if c.FindType(tt.wantType) == nil {
				t.Errorf("expected type %s to be declared", tt.wantType)
			}
		})
	}
}

func TestCompile_NestedObjectsStayInline(t *testing.T) {
	c, err := Compile(endpoints(t, "/orders", `[{"id":1,"customer":{"name":"Ann","tier":2},"lines":[{"sku":"a"}]}]`))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Types) != 1 {
		t.Fatalf("expected only OrdersType to be declared, got %d types", len(c.Types))
	}
	orders := c.Types[0]
	if got := TypeRef(orders.Field("customer").Type); got != "JSON" {
		t.Errorf("customer = %s, want JSON", got)
	}
	if got := TypeRef(orders.Field("lines").Type); got != "[JSON]" {
		t.Errorf("lines = %s, want [JSON]", got)
	}
	if _, ok := orders.Field("customer").Type.(*ObjectDescriptor); !ok {
		t.Error("customer should keep its inline object shape")
	}
}

func TestCompile_FieldCollisionLastWins(t *testing.T) {
	c, err := Compile(endpoints(t,
		"/user-list", `[{"id":1}]`,
		"/other", `true`,
		"/user_list", `"replaced"`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Query) != 2 {
		t.Fatalf("expected 2 Query fields, got %d", len(c.Query))
	}
	first := c.Query[0]
	if first.Name != "user_list" {
		t.Errorf("collided field should keep first position, got %q", first.Name)
	}
	if first.Route != "/user_list" {
		t.Errorf("collided field route = %q, want the later /user_list", first.Route)
	}
	if got := TypeRef(first.Type); got != "String" {
		t.Errorf("collided field type = %s, want String", got)
	}
	if len(c.Types) != 0 {
		t.Errorf("orphaned User_listType should not be declared, got %d types", len(c.Types))
	}
	if strings.Count(c.SDL(), "user_list:") != 1 {
		t.Errorf("SDL should declare user_list once:\n%s", c.SDL())
	}
}

func TestCompile_TypeCollisionLastWins(t *testing.T) {
	c, err := Compile(endpoints(t,
		"/users", `[{"id":1}]`,
		"/Users", `{"email":"a@b.c"}`,
	))
	if err != nil {
		t.Fatal(err)
	}
	if len(c.Types) != 1 {
		t.Fatalf("expected one UsersType declaration, got %d", len(c.Types))
	}
	users := c.FindType("UsersType")
	if users.Field("email") == nil || users.Field("id") != nil {
		t.Errorf("UsersType should carry the later shape, got %+v", users.Fields)
	}
	// Both fields reference the surviving declaration.
	if got := TypeRef(c.FindField("users").Type); got != "[UsersType]" {
		t.Errorf("users = %s", got)
	}
	if got := TypeRef(c.FindField("Users").Type); got != "UsersType" {
		t.Errorf("Users = %s", got)
	}
	elem := c.FindField("users").Type.(*ListDescriptor).Element
	if elem != users {
		t.Error("earlier field should reference the surviving declaration")
	}
}

func TestCompile_Deterministic(t *testing.T) {
	eps := endpoints(t,
		"/users", `[{"id":1,"name":"Ann","tags":["x"]}]`,
		"/settings", `{"theme":"dark","beta":false,"ratio":0.5}`,
		"/count", `7`,
	)
	a, err := Compile(eps)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Compile(eps)
	if err != nil {
		t.Fatal(err)
	}
	if a.SDL() != b.SDL() {
		t.Errorf("SDL differs between runs:\n%s\n---\n%s", a.SDL(), b.SDL())
	}
	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Errorf("descriptors differ between runs:\n%s\n---\n%s", ja, jb)
	}
}

func TestCompile_NoEndpoints(t *testing.T) {
	c, err := Compile(nil)
	if err != nil {
		t.Fatalf("Compile(nil) error: %v", err)
	}
	if !strings.Contains(c.SDL(), EmptyQueryField+": Boolean") {
		t.Errorf("expected placeholder field in SDL:\n%s", c.SDL())
	}
	if len(c.Query) != 0 {
		t.Errorf("expected no Query fields, got %d", len(c.Query))
	}
}

func TestCompile_InvalidNames(t *testing.T) {
	tests := []struct {
		name     string
		route    string
		response string
	}{
		{"root route", "/", `1`},
		{"leading digit", "/1users", `1`},
		{"dashed key", "/users", `[{"first-name":"Ann"}]`},
		{"reserved key", "/users", `{"__typename":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(endpoints(t, tt.route, tt.response))
			if !errors.Is(err, ErrInvalidSchema) {
				t.Errorf("expected ErrInvalidSchema, got %v", err)
			}
		})
	}
}

func TestCompiled_MarshalJSON(t *testing.T) {
	c, err := Compile(endpoints(t, "/users", `[{"id":1}]`))
	if err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"types":[{"kind":"object","name":"UsersType","fields":[{"name":"id","type":{"kind":"scalar","scalar":"Int"}}]}],` +
		`"query":[{"name":"users","route":"/users","type":{"kind":"list","element":{"kind":"ref","name":"UsersType"}}}]}`
	if string(data) != want {
		t.Errorf("MarshalJSON =\n%s\nwant\n%s", data, want)
	}
}
