package loader

import (
	"maps"
	"slices"

	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// collapse rewrites a union into canonical form: nested unions are spliced
// in, object members merge into at most one object, array members merge into
// at most one array, and the remaining members are deduplicated by structural
// equality in first-seen order. A single survivor is returned unwrapped.
// Collapsing an already-canonical union is a no-op.
func collapse(s model.Schema) model.Schema {
	u, ok := s.(model.Union)
	if !ok {
		return s
	}

	var (
		object *model.Object
		inners []model.Schema
		rest   []model.Schema
	)
	for _, m := range flatten(u, nil) {
		switch v := m.(type) {
		case model.Object:
			if object == nil {
				object = &v
			} else {
				merged := mergeObjects(*object, v)
				object = &merged
			}
		case model.Array:
			inners = append(inners, v.Of)
		default:
			if !slices.ContainsFunc(rest, func(seen model.Schema) bool { return model.Equal(seen, m) }) {
				rest = append(rest, m)
			}
		}
	}

	var out []model.Schema
	if object != nil {
		out = append(out, *object)
	}
	if len(inners) > 0 {
		out = append(out, model.Array{Of: collapse(model.Union{Of: inners})})
	}
	out = append(out, rest...)

	switch len(out) {
	case 0:
		return model.Any{}
	case 1:
		return out[0]
	}
	return model.Union{Of: out}
}

func flatten(u model.Union, acc []model.Schema) []model.Schema {
	for _, m := range u.Of {
		if nested, ok := m.(model.Union); ok {
			acc = flatten(nested, acc)
		} else {
			acc = append(acc, m)
		}
	}
	return acc
}

// mergeObjects unions two property maps. A key defined on both sides with
// different schemas becomes the collapsed union of the two.
func mergeObjects(a, b model.Object) model.Object {
	props := make(map[string]model.Schema, len(a.Props)+len(b.Props))
	for _, p := range a.Props {
		props[p.Name] = p.Schema
	}
	for _, p := range b.Props {
		if existing, ok := props[p.Name]; ok && !model.Equal(existing, p.Schema) {
			props[p.Name] = collapse(model.Union{Of: []model.Schema{existing, p.Schema}})
		} else {
			props[p.Name] = p.Schema
		}
	}
	return model.Object{Props: sortedProps(props)}
}

func sortedProps(props map[string]model.Schema) []model.Property {
	names := slices.Sorted(maps.Keys(props))
	out := make([]model.Property, 0, len(names))
	for _, name := range names {
		out = append(out, model.Property{Name: name, Schema: props[name]})
	}
	return out
}
