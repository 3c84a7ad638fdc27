package roles

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed seed_roles.yaml
var seedRolesYAML []byte

// SeedRoles returns the built-in reference roles.
func SeedRoles() ([]Role, error) {
	return DecodeRoles(bytes.NewReader(seedRolesYAML))
}

// LoadRolesFile reads a YAML list of roles from path.
func LoadRolesFile(path string) ([]Role, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roles file: %w", err)
	}
	defer f.Close()
	return DecodeRoles(f)
}

// DecodeRoles parses a YAML list of roles. Roles without a title are rejected.
func DecodeRoles(r io.Reader) ([]Role, error) {
	var out []Role
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode roles: %w", err)
	}
	for i, role := range out {
		if role.Title == "" {
			return nil, fmt.Errorf("decode roles: entry %d has no title", i)
		}
	}
	return out, nil
}
