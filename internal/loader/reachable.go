package loader

import (
	"fmt"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

type refState int

const (
	stateNew refState = iota
	stateSeen
)

// Filter keeps the operations admitted by include and prunes the model list
// to the transitive closure of references reachable from them, so generation
// emits no dead types and no dangling refs. A nil include keeps everything.
func Filter(doc *document.Document, spec *model.Spec, include func(id string) bool) (*model.Spec, error) {
	if include == nil {
		include = func(string) bool { return true }
	}

	states := make(map[string]refState)
	names := make(map[string]bool)
	var pending []string

	collect := func(s model.Schema) {
		model.Walk(s, func(n model.Schema) {
			r, ok := n.(model.Ref)
			if !ok {
				return
			}
			if _, tracked := states[r.Pointer]; tracked {
				return
			}
			states[r.Pointer] = stateNew
			names[r.Name] = true
			pending = append(pending, r.Pointer)
		})
	}

	out := &model.Spec{
		Info:     spec.Info,
		Host:     spec.Host,
		BasePath: spec.BasePath,
		Schemes:  spec.Schemes,
		Consumes: spec.Consumes,
	}

	for _, op := range spec.Operations {
		if !include(op.ID) {
			continue
		}
		out.Operations = append(out.Operations, op)
		for _, params := range [][]model.Param{op.PathParams, op.QueryParams, op.BodyParams} {
			for _, prm := range params {
				collect(prm.Schema)
			}
		}
		collect(op.RequestBody)
		for _, resp := range op.Responses {
			collect(resp.Schema)
		}
	}

	// Fixpoint over the reference graph. Seen pointers are sticky, so
	// cycles terminate.
	p := &parser{doc: doc}
	for len(pending) > 0 {
		pointer := pending[0]
		pending = pending[1:]
		if states[pointer] == stateSeen {
			continue
		}
		node, err := doc.Lookup(pointer)
		if err != nil {
			return nil, fmt.Errorf("resolving model reference: %w", err)
		}
		schema, err := p.parseSchema(node)
		if err != nil {
			return nil, err
		}
		states[pointer] = stateSeen
		collect(schema)
	}

	for _, m := range spec.Models {
		if names[m.Name] {
			out.Models = append(out.Models, m)
		}
	}

	return out, nil
}
