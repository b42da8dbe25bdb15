package loader

import (
	"fmt"
	"os"
	"strings"

	"github.com/elixir-tesla/tesla-openapi/internal/document"
)

type Result struct {
	Document *document.Document
	Version  string
	Warnings []string
	RawData  []byte
}

func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return Load(data)
}

func Load(data []byte) (*Result, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing OpenAPI document: %w", err)
	}

	result := &Result{
		Document: doc,
		RawData:  data,
	}

	if root, ok := doc.Root().(*document.Object); ok {
		if v, ok := root.Get("openapi"); ok {
			result.Version, _ = v.(string)
		} else if v, ok := root.Get("swagger"); ok {
			result.Version, _ = v.(string)
		}
	}

	if strings.HasPrefix(result.Version, "2.") {
		result.Warnings = append(result.Warnings, "Swagger 2.0 detected; schemas are read from definitions")
	}

	return result, nil
}
