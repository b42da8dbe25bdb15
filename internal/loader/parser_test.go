package loader

import (
	"testing"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
	"github.com/stretchr/testify/require"
)

func parseTestDoc(t *testing.T, src string) *document.Document {
	t.Helper()
	doc, err := document.Parse([]byte(src))
	require.NoError(t, err)
	return doc
}

// parseRoot parses the whole document as a single schema node.
func parseRoot(t *testing.T, src string) model.Schema {
	t.Helper()
	doc := parseTestDoc(t, src)
	p := &parser{doc: doc}
	s, err := p.parseSchema(doc.Root())
	require.NoError(t, err)
	return s
}

func TestParseSchemaDispatch(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want model.Schema
	}{
		{
			name: "primitive string",
			src:  `{"type": "string"}`,
			want: model.Prim{Kind: model.KindString},
		},
		{
			name: "primitive null",
			src:  `{"type": "null"}`,
			want: model.Prim{Kind: model.KindNull},
		},
		{
			name: "parameter schema wrapper",
			src:  `{"name": "limit", "in": "query", "schema": {"type": "integer"}}`,
			want: model.Prim{Kind: model.KindInteger},
		},
		{
			name: "polymorphic type array",
			src:  `{"type": ["string", "null"]}`,
			want: model.Union{Of: []model.Schema{
				model.Prim{Kind: model.KindString},
				model.Prim{Kind: model.KindNull},
			}},
		},
		{
			name: "polymorphic type array deduplicates",
			src:  `{"type": ["string", "string"]}`,
			want: model.Prim{Kind: model.KindString},
		},
		{
			name: "tuple-form items",
			src:  `{"items": [{"type": "string"}, {"type": "integer"}]}`,
			want: model.Union{Of: []model.Schema{
				model.Prim{Kind: model.KindString},
				model.Prim{Kind: model.KindInteger},
			}},
		},
		{
			name: "anyOf deduplicates primitives",
			src:  `{"anyOf": [{"type": "string"}, {"type": "string"}, {"type": "integer"}]}`,
			want: model.Union{Of: []model.Schema{
				model.Prim{Kind: model.KindString},
				model.Prim{Kind: model.KindInteger},
			}},
		},
		{
			name: "oneOf treated as anyOf",
			src:  `{"oneOf": [{"type": "boolean"}, {"type": "integer"}]}`,
			want: model.Union{Of: []model.Schema{
				model.Prim{Kind: model.KindBoolean},
				model.Prim{Kind: model.KindInteger},
			}},
		},
		{
			name: "anyOf merges objects",
			src: `{"anyOf": [
				{"properties": {"a": {"type": "string"}}},
				{"properties": {"a": {"type": "integer"}, "b": {"type": "boolean"}}}
			]}`,
			want: model.Object{Props: []model.Property{
				{Name: "a", Schema: model.Union{Of: []model.Schema{
					model.Prim{Kind: model.KindString},
					model.Prim{Kind: model.KindInteger},
				}}},
				{Name: "b", Schema: model.Prim{Kind: model.KindBoolean}},
			}},
		},
		{
			name: "typed array",
			src:  `{"type": "array", "items": {"type": "string"}}`,
			want: model.Array{Of: model.Prim{Kind: model.KindString}},
		},
		{
			name: "array without items",
			src:  `{"type": "array"}`,
			want: model.Array{Of: model.Any{}},
		},
		{
			name: "bare items",
			src:  `{"items": {"type": "boolean"}}`,
			want: model.Array{Of: model.Prim{Kind: model.KindBoolean}},
		},
		{
			name: "properties sorted by name",
			src:  `{"properties": {"b": {"type": "string"}, "a": {"type": "integer"}}}`,
			want: model.Object{Props: []model.Property{
				{Name: "a", Schema: model.Prim{Kind: model.KindInteger}},
				{Name: "b", Schema: model.Prim{Kind: model.KindString}},
			}},
		},
		{
			name: "single-element allOf unwraps",
			src:  `{"allOf": [{"type": "string"}]}`,
			want: model.Prim{Kind: model.KindString},
		},
		{
			name: "bare object type",
			src:  `{"type": "object"}`,
			want: model.Object{},
		},
		{
			name: "named ref v2",
			src:  `{"$ref": "#/definitions/Pet"}`,
			want: model.Ref{Name: "Pet", Pointer: "#/definitions/Pet"},
		},
		{
			name: "named ref v3",
			src:  `{"$ref": "#/components/schemas/Pet"}`,
			want: model.Ref{Name: "Pet", Pointer: "#/components/schemas/Pet"},
		},
		{
			name: "empty schema",
			src:  `{}`,
			want: model.Any{},
		},
		{
			name: "json content wrapper",
			src:  `{"content": {"application/json": {"schema": {"type": "string"}}}}`,
			want: model.Prim{Kind: model.KindString},
		},
		{
			name: "octet-stream content wrapper",
			src:  `{"content": {"application/octet-stream": {"schema": {"type": "string"}}}}`,
			want: model.Prim{Kind: model.KindString},
		},
		{
			name: "unknown shape degrades to Any",
			src:  `{"format": "int64"}`,
			want: model.Any{},
		},
		{
			name: "vendor extension degrades to Any",
			src:  `{"x-amf-union": [1, 2]}`,
			want: model.Any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRoot(t, tt.src)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseSchemaNonObjectNode(t *testing.T) {
	doc := parseTestDoc(t, `{"weird": "scalar"}`)
	p := &parser{doc: doc}

	node, err := doc.Lookup("#/weird")
	require.NoError(t, err)

	s, err := p.parseSchema(node)
	require.NoError(t, err)
	require.Equal(t, model.Any{}, s)
}

func TestParseInlineRef(t *testing.T) {
	doc := parseTestDoc(t, `{
		"parameters": {"limitParam": {"type": "integer"}},
		"node": {"$ref": "#/parameters/limitParam"}
	}`)
	p := &parser{doc: doc}

	node, err := doc.Lookup("#/node")
	require.NoError(t, err)

	s, err := p.parseSchema(node)
	require.NoError(t, err)
	require.Equal(t, model.Prim{Kind: model.KindInteger}, s)
}

func TestParseInlineRefNotFound(t *testing.T) {
	doc := parseTestDoc(t, `{"node": {"$ref": "#/parameters/missing"}}`)
	p := &parser{doc: doc}

	node, err := doc.Lookup("#/node")
	require.NoError(t, err)

	_, err = p.parseSchema(node)
	var notFound *document.NotFoundError
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "#/parameters/missing", notFound.Pointer)
}

func TestParseNestedRefStaysSymbolic(t *testing.T) {
	got := parseRoot(t, `{"properties": {"pet": {"$ref": "#/definitions/Pet"}}}`)
	want := model.Object{Props: []model.Property{
		{Name: "pet", Schema: model.Ref{Name: "Pet", Pointer: "#/definitions/Pet"}},
	}}
	require.Equal(t, model.Schema(want), got)
}

func TestParsePropertyOrderDeterminism(t *testing.T) {
	src := `{"properties": {"zz": {"type": "string"}, "aa": {"type": "integer"}, "mm": {"type": "boolean"}}}`

	first := parseRoot(t, src)
	second := parseRoot(t, src)
	require.Equal(t, first, second)

	obj, ok := first.(model.Object)
	require.True(t, ok)
	require.Equal(t, []string{"aa", "mm", "zz"}, propNames(obj))
}

func propNames(obj model.Object) []string {
	var names []string
	for _, p := range obj.Props {
		names = append(names, p.Name)
	}
	return names
}
