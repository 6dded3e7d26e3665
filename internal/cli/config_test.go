package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}
	return path
}

func TestLoadPolicy_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := LoadPolicy("")
	if err != nil {
		t.Fatalf("LoadPolicy() error: %v", err)
	}
	p := cfg.Policy()
	if p.CollapseCharSign || p.OrderedNamespaces {
		t.Fatalf("defaults should be zero policy, got %+v", p)
	}
}

func TestLoadPolicy_File(t *testing.T) {
	path := writePolicy(t, "char-signedness: collapse\nnamespace-order: ordered\n")
	cfg, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy() error: %v", err)
	}
	p := cfg.Policy()
	if !p.CollapseCharSign || !p.OrderedNamespaces {
		t.Fatalf("policy not applied: %+v", p)
	}
}

func TestLoadPolicy_PartialFile(t *testing.T) {
	path := writePolicy(t, "char-signedness: distinct\n")
	cfg, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy() error: %v", err)
	}
	p := cfg.Policy()
	if p.CollapseCharSign || p.OrderedNamespaces {
		t.Fatalf("unset keys should keep defaults, got %+v", p)
	}
}

func TestLoadPolicy_RejectsUnknownKeys(t *testing.T) {
	path := writePolicy(t, "char-signednes: collapse\n")
	if _, err := LoadPolicy(path); err == nil {
		t.Fatalf("misspelled key should be rejected")
	}
}

func TestLoadPolicy_RejectsBadValues(t *testing.T) {
	path := writePolicy(t, "char-signedness: sometimes\n")
	if _, err := LoadPolicy(path); err == nil {
		t.Fatalf("invalid value should be rejected")
	}
}

func TestLoadPolicy_MissingFile(t *testing.T) {
	if _, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file should error")
	}
}
