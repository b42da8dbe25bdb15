package client

import (
	"fmt"

	"github.com/elixir-tesla/tesla-openapi/internal/golang"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
	"github.com/elixir-tesla/tesla-openapi/internal/templates"
)

type Target struct{}

func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "client"
}

type templateData struct {
	Package    string
	Title      string
	Operations []operationData
}

type operationData struct {
	ID          string
	GoName      string
	Method      string
	Path        string
	Summary     string
	PathParams  []parameterData
	QueryParams []parameterData
	BodyType    string
	ResultType  string
}

type parameterData struct {
	Name        string
	Arg         string
	Type        string
	Placeholder string
	Encode      string
	OmitEmpty   bool
}

// Generate renders one client method per operation. rename maps an
// operationId to the user-chosen method name; pass nil for identity.
func (t *Target) Generate(engine templates.Engine, spec *model.Spec, pkg string, rename func(id string) string) (string, error) {
	if rename == nil {
		rename = func(id string) string { return id }
	}

	data := templateData{Package: pkg, Title: spec.Info.Title}

	for _, op := range spec.Operations {
		opData := operationData{
			ID:      op.ID,
			GoName:  golang.Identifier(rename(op.ID)),
			Method:  string(op.Method),
			Path:    op.Path,
			Summary: op.Summary,
		}

		for _, p := range op.PathParams {
			opData.PathParams = append(opData.PathParams, pathParameter(p))
		}
		for _, p := range op.QueryParams {
			opData.QueryParams = append(opData.QueryParams, queryParameter(p))
		}

		if op.RequestBody != nil {
			opData.BodyType = golang.TypeOf(op.RequestBody)
		} else if len(op.BodyParams) > 0 {
			opData.BodyType = golang.TypeOf(op.BodyParams[0].Schema)
		}

		if success := op.Success(); success != nil && success.Schema != nil {
			opData.ResultType = golang.TypeOf(success.Schema)
		}

		data.Operations = append(data.Operations, opData)
	}

	return engine.Execute("go/client.tmpl", data)
}

func pathParameter(p model.Param) parameterData {
	arg := golang.Argument(p.Name)
	pd := parameterData{
		Name:        p.Name,
		Arg:         arg,
		Type:        golang.TypeOf(p.Schema),
		Placeholder: fmt.Sprintf("{%s}", p.Name),
	}
	if golang.IsComparableString(p.Schema) {
		pd.Encode = fmt.Sprintf("url.PathEscape(%s)", arg)
	} else {
		pd.Encode = fmt.Sprintf("fmt.Sprint(%s)", arg)
	}
	return pd
}

func queryParameter(p model.Param) parameterData {
	arg := golang.Argument(p.Name)
	pd := parameterData{
		Name: p.Name,
		Arg:  arg,
		Type: golang.TypeOf(p.Schema),
	}
	if golang.IsComparableString(p.Schema) {
		pd.OmitEmpty = true
	} else {
		pd.Encode = fmt.Sprintf("fmt.Sprint(%s)", arg)
	}
	return pd
}
