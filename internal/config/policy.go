package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/alnah/go-dictation/internal/fragment"
)

// Validator is implemented by values that check themselves after decoding.
type Validator interface {
	Validate() error
}

// LoadYAML decodes a YAML file into target after expanding ${VAR} references
// from the environment. If target implements Validator, it is validated.
func LoadYAML[T any](filename string, target *T) error {
	data, err := os.ReadFile(filename) // #nosec G304 -- user-provided policy path
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	if v, ok := any(target).(Validator); ok {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	}
	return nil
}

// LoadPolicy reads a segmentation policy file.
// Keys absent from the file keep their default value.
// An empty filename returns fragment.DefaultPolicy.
func LoadPolicy(filename string) (fragment.Policy, error) {
	p := fragment.DefaultPolicy()
	if filename == "" {
		return p, nil
	}
	if err := LoadYAML(ExpandPath(filename), &p); err != nil {
		return fragment.Policy{}, err
	}
	return p, nil
}
