package types

import (
	"strings"

	"github.com/elixir-tesla/tesla-openapi/internal/golang"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
	"github.com/elixir-tesla/tesla-openapi/internal/templates"
)

type Target struct{}

func New() *Target {
	return &Target{}
}

func (t *Target) Name() string {
	return "types"
}

type templateData struct {
	Package string
	Models  []modelData
}

type modelData struct {
	GoName  string
	GoType  string
	Comment string
}

func (t *Target) Generate(engine templates.Engine, spec *model.Spec, pkg string) (string, error) {
	data := templateData{Package: pkg}

	for _, m := range spec.Models {
		name := golang.Identifier(m.Name)
		data.Models = append(data.Models, modelData{
			GoName:  name,
			GoType:  golang.TypeOf(m.Schema),
			Comment: comment(name, m),
		})
	}

	return engine.Execute("go/types.tmpl", data)
}

func comment(goName string, m model.Model) string {
	text := m.Description
	if text == "" {
		text = m.Title
	}
	if text == "" {
		return ""
	}
	text = strings.Join(strings.Fields(text), " ")
	return goName + ": " + text
}
