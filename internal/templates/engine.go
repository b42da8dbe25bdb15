package templates

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"
)

type Engine interface {
	Execute(name string, data any) (string, error)
}

// TextTemplateEngine loads .tmpl files from the embedded set, then lets a
// custom directory shadow them by name.
type TextTemplateEngine struct {
	templates *template.Template
}

func NewEngine(embedded fs.FS, customDir string, funcs template.FuncMap) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{templates: template.New("").Funcs(funcs)}

	if err := e.parseAll(embedded); err != nil {
		return nil, fmt.Errorf("loading embedded templates: %w", err)
	}
	if customDir != "" {
		if _, err := os.Stat(customDir); err == nil {
			if err := e.parseAll(os.DirFS(customDir)); err != nil {
				return nil, fmt.Errorf("loading custom templates: %w", err)
			}
		}
	}
	return e, nil
}

func (e *TextTemplateEngine) parseAll(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}
		if _, err := e.templates.New(path).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing template %s: %w", path, err)
		}
		return nil
	})
}

func (e *TextTemplateEngine) Execute(name string, data any) (string, error) {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}

	return buf.String(), nil
}
