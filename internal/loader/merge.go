package loader

import (
	"fmt"

	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// merge folds an allOf composition into a single schema. Any members are
// dropped; a lone survivor is returned as-is (a Ref stays symbolic). With
// several survivors every member must be an object, or a reference chain
// ending in one, and their properties union with the rightmost definition
// winning.
func (p *parser) merge(members []model.Schema) (model.Schema, error) {
	kept := members[:0:0]
	for _, m := range members {
		if _, ok := m.(model.Any); ok {
			continue
		}
		kept = append(kept, m)
	}

	switch len(kept) {
	case 0:
		return model.Any{}, nil
	case 1:
		return kept[0], nil
	}

	props := make(map[string]model.Schema)
	for _, m := range kept {
		obj, err := p.resolveObject(m)
		if err != nil {
			return nil, err
		}
		for _, prop := range obj.Props {
			props[prop.Name] = prop.Schema
		}
	}
	return model.Object{Props: sortedProps(props)}, nil
}

// resolveObject follows reference chains until it reaches an object.
func (p *parser) resolveObject(s model.Schema) (model.Object, error) {
	seen := make(map[string]bool)
	for {
		switch v := s.(type) {
		case model.Object:
			return v, nil
		case model.Ref:
			if seen[v.Pointer] {
				return model.Object{}, &MergeConflictError{
					Reason: fmt.Sprintf("reference cycle through %s", v.Pointer),
				}
			}
			seen[v.Pointer] = true
			target, err := p.fetch(v.Pointer)
			if err != nil {
				return model.Object{}, err
			}
			s = target
		default:
			return model.Object{}, &MergeConflictError{
				Reason: fmt.Sprintf("member %T is not an object", s),
			}
		}
	}
}
