package tuning

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ShakaofCarthage/empire-engine/internal/domain/rules"
)

//go:embed default.yaml
var defaultRules []byte

// Load reads a balance catalog from path. An empty path returns the
// embedded defaults.
func Load(path string) (*rules.Rules, error) {
	raw := defaultRules
	if path != "" {
		var err error
		raw, err = os.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}
	return Parse(raw)
}

// Parse decodes and indexes a YAML catalog
func Parse(raw []byte) (*rules.Rules, error) {
	var r rules.Rules
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("tuning yaml: %w", err)
	}
	if err := r.Index(); err != nil {
		return nil, err
	}
	return &r, nil
}

// MustDefault returns the embedded catalog and panics if it is broken
func MustDefault() *rules.Rules {
	r, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("embedded tuning is invalid: %v", err))
	}
	return r
}
