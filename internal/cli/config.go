package cli

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/decleq/decleq/internal/equiv"
)

var validate = validator.New()

// Config stores CLI options for a single comparison run.
type Config struct {
	FileA string
	FileB string

	// Batch names a txtar archive holding the two translation units plus
	// a "queries" manifest; it replaces the single-query flags.
	Batch string

	Name       string
	Kind       string
	Definition bool
	Last       bool

	Format      string `validate:"oneof=text yaml"`
	PolicyPath  string
	ShowVersion bool
}

// PolicyConfig is the YAML policy file shape. Empty fields keep the
// defaults: char distinct from signed char everywhere, namespaces
// unordered.
type PolicyConfig struct {
	CharSignedness string `yaml:"char-signedness" validate:"omitempty,oneof=distinct collapse"`
	NamespaceOrder string `yaml:"namespace-order" validate:"omitempty,oneof=unordered ordered"`
}

// Policy translates the file shape into engine policy.
func (p *PolicyConfig) Policy() equiv.Policy {
	return equiv.Policy{
		CollapseCharSign:  p.CharSignedness == "collapse",
		OrderedNamespaces: p.NamespaceOrder == "ordered",
	}
}

// LoadPolicy reads and validates a policy file. An empty path yields the
// default policy.
func LoadPolicy(path string) (*PolicyConfig, error) {
	cfg := &PolicyConfig{}
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("policy: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("policy: parse %s: %w", path, err)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("policy: %s: %w", path, err)
	}
	return cfg, nil
}
