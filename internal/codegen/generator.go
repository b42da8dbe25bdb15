package codegen

import (
	"fmt"

	"github.com/elixir-tesla/tesla-openapi/internal/config"
	"github.com/elixir-tesla/tesla-openapi/internal/golang"
	"github.com/elixir-tesla/tesla-openapi/internal/model"
	"github.com/elixir-tesla/tesla-openapi/internal/targets/client"
	"github.com/elixir-tesla/tesla-openapi/internal/targets/types"
	"github.com/elixir-tesla/tesla-openapi/internal/templates"
	embeddedtmpl "github.com/elixir-tesla/tesla-openapi/templates"
)

type Generator struct {
	config *config.Config
	engine templates.Engine
}

type Output struct {
	Filename string
	Content  string
}

func New(cfg *config.Config) (*Generator, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, cfg.Templates.Dir, nil)
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}

	return &Generator{
		config: cfg,
		engine: engine,
	}, nil
}

func (g *Generator) Generate(spec *model.Spec) ([]Output, error) {
	var outputs []Output

	if g.config.HasTarget("types") {
		target := types.New()
		content, err := target.Generate(g.engine, spec, g.config.Go.Package)
		if err != nil {
			return nil, fmt.Errorf("generating types: %w", err)
		}
		formatted, err := golang.Format([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("formatting types: %w", err)
		}
		outputs = append(outputs, Output{
			Filename: "types.go",
			Content:  string(formatted),
		})
	}

	if g.config.HasTarget("client") {
		target := client.New()
		content, err := target.Generate(g.engine, spec, g.config.Go.Package, g.config.RenameOperation)
		if err != nil {
			return nil, fmt.Errorf("generating client: %w", err)
		}
		formatted, err := golang.Format([]byte(content))
		if err != nil {
			return nil, fmt.Errorf("formatting client: %w", err)
		}
		outputs = append(outputs, Output{
			Filename: "client.go",
			Content:  string(formatted),
		})
	}

	return outputs, nil
}
