package utils

import (
	"os"

	"github.com/latchbio-nfcore/rnadnavar/models"
	yaml "gopkg.in/yaml.v2"
)

// ReadParametersFile decodes a YAML (or JSON) document of parameter values.
// Documents are read as YAML 1.1, so unquoted yes/no/on/off come back as
// booleans.
func ReadParametersFile(path string) (map[string]interface{}, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := map[string]interface{}{}
	if err := yaml.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// MarshalSchemaYaml renders parameter specs as YAML for UI tooling.
func MarshalSchemaYaml(specs []models.ParameterSpec) ([]byte, error) {
	return yaml.Marshal(specs)
}
