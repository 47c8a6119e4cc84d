package schema

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TypeSuffix is appended to a capitalized field name to form the name of
// an endpoint's object type.
const TypeSuffix = "Type"

var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// FieldName derives the Query field name for a route: the leading "/" is
// dropped and every run of non-alphanumeric characters becomes a single "_".
//
//	/users          -> users
//	/api/v1/users   -> api_v1_users
//	/orders/:id     -> orders_id
//
// Distinct routes can derive the same name; Compile keeps the last one.
func FieldName(route string) string {
	return nonAlphanumeric.ReplaceAllString(strings.TrimPrefix(route, "/"), "_")
}

// TypeName derives the object type name for a field: first letter
// upper-cased plus TypeSuffix, e.g. "users" -> "UsersType".
func TypeName(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if size == 0 {
		return TypeSuffix
	}
	return string(unicode.ToUpper(r)) + field[size:] + TypeSuffix
}
