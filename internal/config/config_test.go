package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint/rules"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "bl.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write bl.toml: %v", err)
	}
	return path
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint]
max-diagnostics = 50
jobs = 2

[lint.rules."no-empty-block"]
enabled = false

[lint.rules."snake-case-names"]
severity = "error"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lint.MaxDiagnostics != 50 || cfg.Lint.Jobs != 2 {
		t.Fatalf("numbers not applied: %+v", cfg.Lint)
	}

	sel, overrides, err := cfg.Resolve(rules.DefaultRegistry())
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if on, configured := sel["no-empty-block"]; !configured || on {
		t.Fatalf("no-empty-block selection = %v/%v", on, configured)
	}
	if overrides["snake-case-names"] != diag.SevError {
		t.Fatalf("override not applied: %v", overrides)
	}
	if _, configured := sel["snake-case-names"]; configured {
		t.Fatalf("severity-only entry must not toggle enablement")
	}
}

func TestLoadRejectsNegativeJobs(t *testing.T) {
	path := writeManifest(t, t.TempDir(), "[lint]\njobs = -1\n")
	if _, err := Load(path); err == nil {
		t.Fatalf("negative jobs accepted")
	}
}

func TestResolveRejectsUnknownRule(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint.rules."no-such-rule"]
enabled = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	_, _, err = cfg.Resolve(rules.DefaultRegistry())
	if err == nil || !strings.Contains(err.Error(), "no-such-rule") {
		t.Fatalf("unknown rule not rejected: %v", err)
	}
}

func TestResolveRejectsUnknownSeverity(t *testing.T) {
	path := writeManifest(t, t.TempDir(), `
[lint.rules."no-empty-block"]
severity = "fatal"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, _, err = cfg.Resolve(rules.DefaultRegistry()); err == nil {
		t.Fatalf("unknown severity accepted")
	}
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[lint]\nmax-diagnostics = 7\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	cfg, manifestPath, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if manifestPath == "" {
		t.Fatalf("manifest not found from nested dir")
	}
	if cfg.Lint.MaxDiagnostics != 7 {
		t.Fatalf("wrong manifest loaded: %+v", cfg.Lint)
	}
}

func TestDiscoverWithoutManifest(t *testing.T) {
	cfg, manifestPath, err := Discover(t.TempDir())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if manifestPath != "" {
		t.Fatalf("phantom manifest %q", manifestPath)
	}
	if cfg.Lint.MaxDiagnostics != DefaultMaxDiagnostics {
		t.Fatalf("defaults not applied: %+v", cfg.Lint)
	}
}
