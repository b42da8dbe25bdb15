package loader

import (
	"fmt"
	"strings"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// mediaTypes are the request/response content types whose schema is used,
// tried in order.
var mediaTypes = []string{
	"application/json",
	"application/octet-stream",
	"application/x-www-form-urlencoded",
}

// modelPrefixes are the pointer prefixes under which a $ref stays symbolic.
// Everything else is dereferenced and inlined.
var modelPrefixes = []string{
	"#/definitions/",
	"#/components/schemas/",
}

type parser struct {
	doc *document.Document
}

// parseSchema translates a document node into a normalized schema. Dispatch
// follows a fixed priority: the parameter "schema" wrapper, explicit type,
// composition keywords, $ref, then content wrappers. Unrecognized shapes
// degrade to Any.
func (p *parser) parseSchema(node any) (model.Schema, error) {
	obj, ok := node.(*document.Object)
	if !ok || obj.Len() == 0 {
		return model.Any{}, nil
	}

	if wrapped, ok := obj.Get("schema"); ok {
		return p.parseSchema(wrapped)
	}

	typ, hasType := obj.Get("type")
	if name, ok := typ.(string); ok {
		if kind, ok := primKind(name); ok {
			return model.Prim{Kind: kind}, nil
		}
	}
	if names, ok := typ.([]any); ok {
		members := make([]model.Schema, 0, len(names))
		for _, name := range names {
			members = append(members, parseTypeName(name))
		}
		return collapse(model.Union{Of: members}), nil
	}

	items, hasItems := obj.Get("items")
	if tuple, ok := items.([]any); ok {
		return p.parseVariants(tuple)
	}

	for _, key := range []string{"anyOf", "oneOf"} {
		if raw, ok := obj.Get(key); ok {
			if variants, ok := raw.([]any); ok {
				return p.parseVariants(variants)
			}
		}
	}

	if hasType && typ == "array" {
		if hasItems {
			of, err := p.parseSchema(items)
			if err != nil {
				return nil, err
			}
			return model.Array{Of: of}, nil
		}
		return model.Array{Of: model.Any{}}, nil
	}
	if hasItems {
		of, err := p.parseSchema(items)
		if err != nil {
			return nil, err
		}
		return model.Array{Of: of}, nil
	}

	if props, ok := obj.Get("properties"); ok {
		return p.parseProperties(props)
	}

	if raw, ok := obj.Get("allOf"); ok {
		if members, ok := raw.([]any); ok && len(members) > 0 {
			if len(members) == 1 {
				return p.parseSchema(members[0])
			}
			parsed := make([]model.Schema, 0, len(members))
			for _, m := range members {
				s, err := p.parseSchema(m)
				if err != nil {
					return nil, err
				}
				parsed = append(parsed, s)
			}
			return p.merge(parsed)
		}
	}

	if hasType && typ == "object" {
		return model.Object{}, nil
	}

	if raw, ok := obj.Get("$ref"); ok {
		if ref, ok := raw.(string); ok {
			return p.parseRef(ref)
		}
	}

	if raw, ok := obj.Get("content"); ok {
		for _, mt := range mediaTypes {
			if media, ok := get(raw, mt); ok {
				return p.parseSchema(media)
			}
		}
	}

	return model.Any{}, nil
}

// parseVariants parses each member and collapses the result to canonical
// union form.
func (p *parser) parseVariants(variants []any) (model.Schema, error) {
	members := make([]model.Schema, 0, len(variants))
	for _, v := range variants {
		s, err := p.parseSchema(v)
		if err != nil {
			return nil, err
		}
		members = append(members, s)
	}
	return collapse(model.Union{Of: members}), nil
}

func (p *parser) parseProperties(props any) (model.Schema, error) {
	obj, ok := props.(*document.Object)
	if !ok {
		return model.Object{}, nil
	}
	byName := make(map[string]model.Schema, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		s, err := p.parseSchema(pair.Value)
		if err != nil {
			return nil, err
		}
		byName[pair.Key] = s
	}
	return model.Object{Props: sortedProps(byName)}, nil
}

// parseRef keeps references to top-level models symbolic so the emitter can
// render them as named types; any other pointer is resolved and inlined.
func (p *parser) parseRef(ref string) (model.Schema, error) {
	for _, prefix := range modelPrefixes {
		rest, ok := strings.CutPrefix(ref, prefix)
		if ok && rest != "" && !strings.Contains(rest, "/") {
			segs := document.Segments(ref)
			return model.Ref{Name: segs[len(segs)-1], Pointer: ref}, nil
		}
	}
	return p.fetch(ref)
}

// fetch dereferences a pointer against the document store and parses the
// target node.
func (p *parser) fetch(pointer string) (model.Schema, error) {
	node, err := p.doc.Lookup(pointer)
	if err != nil {
		return nil, fmt.Errorf("resolving $ref: %w", err)
	}
	return p.parseSchema(node)
}

func primKind(name string) (model.PrimKind, bool) {
	switch name {
	case "null":
		return model.KindNull, true
	case "string":
		return model.KindString, true
	case "integer":
		return model.KindInteger, true
	case "number":
		return model.KindNumber, true
	case "boolean":
		return model.KindBoolean, true
	}
	return "", false
}

// parseTypeName handles one member of a polymorphic "type" array.
func parseTypeName(name any) model.Schema {
	s, ok := name.(string)
	if !ok {
		return model.Any{}
	}
	if kind, ok := primKind(s); ok {
		return model.Prim{Kind: kind}
	}
	switch s {
	case "array":
		return model.Array{Of: model.Any{}}
	case "object":
		return model.Object{}
	}
	return model.Any{}
}

func get(node any, key string) (any, bool) {
	obj, ok := node.(*document.Object)
	if !ok {
		return nil, false
	}
	return obj.Get(key)
}

func stringOf(obj *document.Object, key string) string {
	if v, ok := obj.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func stringsOf(obj *document.Object, key string) []string {
	raw, ok := obj.Get(key)
	if !ok {
		return nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
