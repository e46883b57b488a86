package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"bracketlint/internal/diag"
	"bracketlint/internal/lint"
)

// DefaultMaxDiagnostics caps the per-unit bag when bl.toml does not say
// otherwise.
const DefaultMaxDiagnostics = 256

// RuleSetting is one [lint.rules."id"] entry. Enabled is a pointer so
// "absent" and "false" stay distinguishable; Severity is empty when the
// rule keeps its default.
type RuleSetting struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

// LintSection is the [lint] table of bl.toml.
type LintSection struct {
	MaxDiagnostics int                    `toml:"max-diagnostics"`
	Jobs           int                    `toml:"jobs"`
	Rules          map[string]RuleSetting `toml:"rules"`
}

// Config is the parsed bl.toml.
type Config struct {
	Lint LintSection `toml:"lint"`
}

// Default returns the configuration used when no bl.toml exists.
func Default() *Config {
	return &Config{
		Lint: LintSection{
			MaxDiagnostics: DefaultMaxDiagnostics,
		},
	}
}

// Load parses the manifest at path. Unset numeric fields fall back to
// defaults; zero jobs means "pick per machine" and is resolved by the
// runner.
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if cfg.Lint.MaxDiagnostics <= 0 {
		cfg.Lint.MaxDiagnostics = DefaultMaxDiagnostics
	}
	if cfg.Lint.Jobs < 0 {
		return nil, fmt.Errorf("%s: lint.jobs must not be negative", path)
	}
	return cfg, nil
}

// FindBlToml walks up from startDir to locate bl.toml.
func FindBlToml(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "bl.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads the nearest bl.toml above startDir, or the defaults when
// there is none.
func Discover(startDir string) (*Config, string, error) {
	manifestPath, ok, err := FindBlToml(startDir)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return Default(), "", nil
	}
	cfg, err := Load(manifestPath)
	if err != nil {
		return nil, "", err
	}
	return cfg, manifestPath, nil
}

// Resolve validates rule settings against the registry and splits them
// into the two channels the engine consumes: which rules run, and which
// severities to rewrite at finalize time. Unknown rule ids and unknown
// severities are configuration errors, not silent no-ops.
func (c *Config) Resolve(reg *lint.Registry) (lint.Selection, diag.Overrides, error) {
	sel := make(lint.Selection, len(c.Lint.Rules))
	overrides := make(diag.Overrides)

	for id, setting := range c.Lint.Rules {
		code := diag.Code(id)
		if _, known := reg.Meta(code); !known {
			return nil, nil, fmt.Errorf("unknown rule %q (known: %s)", id, knownIDs(reg))
		}
		if setting.Enabled != nil {
			sel[code] = *setting.Enabled
		}
		if setting.Severity != "" {
			sev, ok := diag.SeverityFromString(setting.Severity)
			if !ok {
				return nil, nil, fmt.Errorf("rule %q: unknown severity %q", id, setting.Severity)
			}
			overrides[code] = sev
		}
	}
	return sel, overrides, nil
}

func knownIDs(reg *lint.Registry) string {
	ids := reg.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
