package golang

import (
	"fmt"
	"strings"

	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// TypeOf renders the Go type for a normalized schema. References become the
// named model type; inline objects render as anonymous structs; unions carry
// raw JSON because their variants only resolve at runtime.
func TypeOf(s model.Schema) string {
	switch v := s.(type) {
	case nil:
		return "any"
	case model.Prim:
		return primType(v.Kind)
	case model.Array:
		return "[]" + TypeOf(v.Of)
	case model.Object:
		return structType(v)
	case model.Union:
		return "json.RawMessage"
	case model.Ref:
		return Identifier(v.Name)
	case model.Any:
		return "any"
	}
	return "any"
}

func primType(kind model.PrimKind) string {
	switch kind {
	case model.KindString:
		return "string"
	case model.KindInteger:
		return "int64"
	case model.KindNumber:
		return "float64"
	case model.KindBoolean:
		return "bool"
	}
	return "any"
}

func structType(obj model.Object) string {
	if len(obj.Props) == 0 {
		return "map[string]any"
	}
	var b strings.Builder
	b.WriteString("struct {\n")
	for _, p := range obj.Props {
		fmt.Fprintf(&b, "\t%s %s `json:\"%s,omitempty\"`\n", Identifier(p.Name), TypeOf(p.Schema), p.Name)
	}
	b.WriteString("}")
	return b.String()
}

// IsComparableString reports whether a schema renders as Go string, which
// lets generated code test parameters against the empty string.
func IsComparableString(s model.Schema) bool {
	p, ok := s.(model.Prim)
	return ok && p.Kind == model.KindString
}
