package loader

import (
	"fmt"
	"strconv"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
)

// methodOrder fixes the method iteration order within one path item so a
// document generates the same operation sequence on every run.
var methodOrder = []struct {
	key    string
	method model.Method
}{
	{"get", model.MethodGet},
	{"post", model.MethodPost},
	{"put", model.MethodPut},
	{"delete", model.MethodDelete},
	{"patch", model.MethodPatch},
	{"head", model.MethodHead},
	{"options", model.MethodOptions},
	{"trace", model.MethodTrace},
}

// extractOperations walks paths in document order. Operations without an
// operationId are not selectable downstream and are skipped.
func (p *parser) extractOperations(paths any) ([]model.Operation, error) {
	root, ok := paths.(*document.Object)
	if !ok {
		return nil, nil
	}

	var ops []model.Operation
	for pair := root.Oldest(); pair != nil; pair = pair.Next() {
		item, ok := pair.Value.(*document.Object)
		if !ok {
			continue
		}

		shared, err := p.resolveParams(item)
		if err != nil {
			return nil, err
		}

		for _, m := range methodOrder {
			raw, ok := item.Get(m.key)
			if !ok {
				continue
			}
			opObj, ok := raw.(*document.Object)
			if !ok {
				continue
			}
			id := stringOf(opObj, "operationId")
			if id == "" {
				continue
			}
			op, err := p.parseOperation(id, m.method, pair.Key, opObj, shared)
			if err != nil {
				return nil, fmt.Errorf("operation %s: %w", id, err)
			}
			ops = append(ops, op)
		}
	}
	return ops, nil
}

func (p *parser) parseOperation(id string, method model.Method, path string, obj *document.Object, shared []*document.Object) (model.Operation, error) {
	op := model.Operation{
		ID:          id,
		Method:      method,
		Path:        path,
		Summary:     stringOf(obj, "summary"),
		Description: stringOf(obj, "description"),
	}

	if raw, ok := obj.Get("externalDocs"); ok {
		if ed, ok := raw.(*document.Object); ok {
			op.ExternalDocs = &model.ExternalDocs{
				Description: stringOf(ed, "description"),
				URL:         stringOf(ed, "url"),
			}
		}
	}

	own, err := p.resolveParams(obj)
	if err != nil {
		return model.Operation{}, err
	}
	for _, param := range combineParams(shared, own) {
		prm := model.Param{
			Name:        stringOf(param, "name"),
			Description: stringOf(param, "description"),
		}
		schema, err := p.parseSchema(param)
		if err != nil {
			return model.Operation{}, err
		}
		prm.Schema = schema
		switch stringOf(param, "in") {
		case "path":
			op.PathParams = append(op.PathParams, prm)
		case "query":
			op.QueryParams = append(op.QueryParams, prm)
		case "body":
			op.BodyParams = append(op.BodyParams, prm)
		}
	}

	if raw, ok := obj.Get("requestBody"); ok {
		schema, err := p.parseSchema(raw)
		if err != nil {
			return model.Operation{}, err
		}
		op.RequestBody = schema
	}

	responses, err := p.parseResponses(obj)
	if err != nil {
		return model.Operation{}, err
	}
	op.Responses = responses

	return op, nil
}

// resolveParams reads the "parameters" list of a path item or operation,
// dereferencing parameter $refs to their target objects.
func (p *parser) resolveParams(obj *document.Object) ([]*document.Object, error) {
	raw, ok := obj.Get("parameters")
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, nil
	}
	var out []*document.Object
	for _, item := range list {
		node, ok := item.(*document.Object)
		if !ok {
			continue
		}
		if ref := stringOf(node, "$ref"); ref != "" {
			target, err := p.doc.Lookup(ref)
			if err != nil {
				return nil, fmt.Errorf("resolving parameter $ref: %w", err)
			}
			node, ok = target.(*document.Object)
			if !ok {
				continue
			}
		}
		out = append(out, node)
	}
	return out, nil
}

// combineParams applies path-item parameters to an operation; an
// operation-level parameter overrides a shared one with the same (in, name).
func combineParams(shared, own []*document.Object) []*document.Object {
	if len(shared) == 0 {
		return own
	}
	key := func(o *document.Object) string {
		return stringOf(o, "in") + ":" + stringOf(o, "name")
	}
	overridden := make(map[string]bool, len(own))
	for _, o := range own {
		overridden[key(o)] = true
	}
	var out []*document.Object
	for _, s := range shared {
		if !overridden[key(s)] {
			out = append(out, s)
		}
	}
	return append(out, own...)
}

// parseResponses keeps numeric codes and "default"; anything else is
// skipped. A response without schema or content carries a nil schema.
func (p *parser) parseResponses(obj *document.Object) ([]model.Response, error) {
	raw, ok := obj.Get("responses")
	if !ok {
		return nil, nil
	}
	responses, ok := raw.(*document.Object)
	if !ok {
		return nil, nil
	}

	var out []model.Response
	for pair := responses.Oldest(); pair != nil; pair = pair.Next() {
		var resp model.Response
		if pair.Key == "default" {
			resp.Default = true
		} else {
			code, err := strconv.Atoi(pair.Key)
			if err != nil {
				continue
			}
			resp.Code = code
		}
		if node, ok := pair.Value.(*document.Object); ok {
			_, hasSchema := node.Get("schema")
			_, hasContent := node.Get("content")
			if hasSchema || hasContent {
				schema, err := p.parseSchema(node)
				if err != nil {
					return nil, err
				}
				resp.Schema = schema
			}
		}
		out = append(out, resp)
	}
	return out, nil
}
