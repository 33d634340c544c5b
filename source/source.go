// Package source loads label specifications from JSON or YAML files.
package source

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"labelsync/labels"

	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaName = "labels-schema.json"

//go:embed labels-schema.json
var schemaJSON []byte

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal label schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaName, doc); err != nil {
		return nil, fmt.Errorf("failed to add label schema: %w", err)
	}

	return compiler.Compile(schemaName)
})

type document struct {
	Labels []labels.LabelSpec `json:"labels"`
}

// LoadFile reads the label specification at path. Files ending in .yaml
// or .yml are parsed as YAML, everything else as JSON.
func LoadFile(path string) ([]labels.LabelSpec, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("'%s' is not a file", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yaml" || ext == ".yml" {
		raw, err = yamlToJSON(raw)
		if err != nil {
			return nil, fmt.Errorf("error while decoding yaml file '%s': %w", path, err)
		}
	}

	specs, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("error while loading '%s': %w", path, err)
	}

	log.Debug().Str("source", path).Int("labels", len(specs)).Msg("Loaded label specification")

	return specs, nil
}

// Parse validates a JSON label document and returns its specs.
func Parse(raw []byte) ([]labels.LabelSpec, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	if err := schema.Validate(instance); err != nil {
		return nil, fmt.Errorf("labels do not match the schema: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	for i := range doc.Labels {
		color := &doc.Labels[i].Color
		if color.IsSet() {
			*color = labels.String(strings.TrimPrefix(color.String(), "#"))
		}
	}

	if err := checkUnique(doc.Labels); err != nil {
		return nil, err
	}

	return doc.Labels, nil
}

// checkUnique rejects specs whose names or aliases could match the same
// observed label, since the diff would silently pick the first one.
func checkUnique(specs []labels.LabelSpec) error {
	owners := map[string]string{}
	var errs []error

	for _, spec := range specs {
		if _, found := owners[spec.Name]; found {
			errs = append(errs, fmt.Errorf("duplicate label '%s'", spec.Name))
			continue
		}
		owners[spec.Name] = spec.Name
	}

	for _, spec := range specs {
		for _, alias := range spec.Alias {
			if previous, found := owners[alias]; found {
				if previous == spec.Name {
					errs = append(errs, fmt.Errorf("label '%s' lists alias '%s' twice or as its own name", spec.Name, alias))
				} else {
					errs = append(errs, fmt.Errorf("alias '%s' of label '%s' is already used by label '%s'", alias, spec.Name, previous))
				}
				continue
			}
			owners[alias] = spec.Name
		}
	}

	return errors.Join(errs...)
}

func yamlToJSON(raw []byte) ([]byte, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	return json.Marshal(doc)
}
