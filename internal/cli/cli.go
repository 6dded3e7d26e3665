package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/decleq/decleq/internal/ast"
)

// ParseArgs parses command line arguments into Config.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}

	fs := pflag.NewFlagSet("decleq", pflag.ContinueOnError)
	fs.StringVarP(&cfg.FileA, "file-a", "a", "", "first translation unit")
	fs.StringVarP(&cfg.FileB, "file-b", "b", "", "second translation unit")
	fs.StringVar(&cfg.Batch, "batch", "", "txtar archive with two units and a queries manifest")
	fs.StringVarP(&cfg.Name, "name", "n", "", "declaration name to compare (empty: first of kind)")
	fs.StringVarP(&cfg.Kind, "kind", "k", "", "declaration kind (variable, function, method, record, ...)")
	fs.BoolVar(&cfg.Definition, "definition", false, "match defining declarations only")
	fs.BoolVar(&cfg.Last, "last", false, "match the last candidate instead of the first")
	fs.StringVarP(&cfg.Format, "format", "f", "text", "output format (text or yaml)")
	fs.StringVar(&cfg.PolicyPath, "policy", "", "YAML policy file")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	if cfg.Batch != "" {
		if cfg.FileA != "" || cfg.FileB != "" {
			return nil, fmt.Errorf("--batch and --file-a/--file-b are mutually exclusive")
		}
		return cfg, nil
	}

	if strings.TrimSpace(cfg.FileA) == "" {
		return nil, fmt.Errorf("--file-a is required")
	}
	if strings.TrimSpace(cfg.FileB) == "" {
		return nil, fmt.Errorf("--file-b is required")
	}
	if strings.TrimSpace(cfg.Kind) == "" {
		return nil, fmt.Errorf("--kind is required")
	}
	if _, err := ast.ParseDeclKind(cfg.Kind); err != nil {
		return nil, err
	}
	return cfg, nil
}
