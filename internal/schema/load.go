package schema

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk form of a set of model declarations.
type File struct {
	Models []Model `yaml:"models"`
}

// LoadModels reads model declarations from a YAML file.
func LoadModels(path string) ([]Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read models file: %w", err)
	}
	models, err := DecodeModels(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return models, nil
}

// DecodeModels decodes YAML model declarations. Field order in the document
// is preserved as column order.
func DecodeModels(r io.Reader) ([]Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return f.Models, nil
}

// FilterModels keeps the models whose table is listed in names, in model
// order. An empty list keeps every model.
func FilterModels(models []Model, names []string) []Model {
	if len(names) == 0 {
		return models
	}

	keep := make(map[string]bool)
	for _, name := range names {
		keep[name] = true
	}

	filtered := make([]Model, 0, len(models))
	for _, m := range models {
		if keep[m.Name] {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
