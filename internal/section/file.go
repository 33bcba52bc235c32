package section

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a section from a YAML or JSON file
func LoadFromFile(path string) (*Section, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read section file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var s Section
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse section file: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid section: %w", err)
	}

	return &s, nil
}
