package model

type Spec struct {
	Info       Info
	Host       string
	BasePath   string
	Schemes    []string
	Consumes   []string
	Models     []Model
	Operations []Operation
}

type Info struct {
	Title       string
	Description string
	Version     string
}

// Model is a named top-level definition from "definitions" or
// "components/schemas".
type Model struct {
	Name        string
	Title       string
	Description string
	Schema      Schema
}

// ModelByName returns the model with the given name, or nil.
func (s *Spec) ModelByName(name string) *Model {
	for i := range s.Models {
		if s.Models[i].Name == name {
			return &s.Models[i]
		}
	}
	return nil
}
