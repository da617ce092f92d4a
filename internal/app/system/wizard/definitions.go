// internal/app/system/wizard/definitions.go
package wizard

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Step names of the schedule wizard shipped in steps.yaml.
const (
	StepDetails   = "details"
	StepMembers   = "members"
	StepFunctions = "functions"
)

//go:embed steps.yaml
var defaultDefinitions []byte

// definitionFile is the YAML shape of a step definitions file.
type definitionFile struct {
	Steps []Step `yaml:"steps"`
}

// LoadDefinitions decodes a YAML step definitions document and registers it.
func LoadDefinitions(r io.Reader) (*Registry, error) {
	var def definitionFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty definitions", ErrInvalidConfiguration)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return RegisterSteps(def.Steps)
}

// LoadDefinitionsFile reads step definitions from path.
func LoadDefinitionsFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open step definitions: %w", err)
	}
	defer f.Close()
	return LoadDefinitions(f)
}

// DefaultRegistry returns the registry built from the embedded definitions.
func DefaultRegistry() (*Registry, error) {
	return LoadDefinitions(bytes.NewReader(defaultDefinitions))
}
