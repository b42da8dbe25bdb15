package loader

import (
	"fmt"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// Transform normalizes a loaded document into a Spec. Models come from
// "definitions" (2.x) and "components/schemas" (3.x), in document order;
// operations from "paths".
func Transform(result *Result) (*model.Spec, error) {
	root, ok := result.Document.Root().(*document.Object)
	if !ok {
		return nil, fmt.Errorf("document root is not an object")
	}

	p := &parser{doc: result.Document}

	spec := &model.Spec{
		Host:     stringOf(root, "host"),
		BasePath: stringOf(root, "basePath"),
		Schemes:  stringsOf(root, "schemes"),
		Consumes: stringsOf(root, "consumes"),
	}

	if raw, ok := root.Get("info"); ok {
		if info, ok := raw.(*document.Object); ok {
			spec.Info = model.Info{
				Title:       stringOf(info, "title"),
				Description: stringOf(info, "description"),
				Version:     stringOf(info, "version"),
			}
		}
	}

	for _, node := range []any{at(root, "definitions"), at(at(root, "components"), "schemas")} {
		defs, ok := node.(*document.Object)
		if !ok {
			continue
		}
		for pair := defs.Oldest(); pair != nil; pair = pair.Next() {
			m := model.Model{Name: pair.Key}
			if def, ok := pair.Value.(*document.Object); ok {
				m.Title = stringOf(def, "title")
				m.Description = stringOf(def, "description")
			}
			schema, err := p.parseSchema(pair.Value)
			if err != nil {
				return nil, fmt.Errorf("model %s: %w", pair.Key, err)
			}
			m.Schema = schema
			spec.Models = append(spec.Models, m)
		}
	}

	if raw, ok := root.Get("paths"); ok {
		ops, err := p.extractOperations(raw)
		if err != nil {
			return nil, err
		}
		spec.Operations = ops
	}

	return spec, nil
}

func at(node any, key string) any {
	if v, ok := get(node, key); ok {
		return v
	}
	return nil
}
