package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harborline/shipshape/internal/output"
)

// FileName is the per-repo configuration file, looked up at the repo root.
const FileName = ".shipshape.yaml"

// altFileName is accepted as a fallback spelling.
const altFileName = ".shipshape.yml"

// Config is the parsed .shipshape.yaml.
type Config struct {
	// Checks lists the checks `shipshape check` runs, in order.
	Checks []string `yaml:"checks"`
	// Strict promotes warnings to failures.
	Strict bool `yaml:"strict"`
	// Exclude holds path prefixes skipped by file-walking checks.
	Exclude []string `yaml:"exclude"`

	Pairs   PairsConfig   `yaml:"pairs"`
	Links   LinksConfig   `yaml:"links"`
	ADR     ADRConfig     `yaml:"adr"`
	Commits CommitsConfig `yaml:"commits"`
	Secrets SecretsConfig `yaml:"secrets"`
	Hooks   HooksConfig   `yaml:"hooks"`
}

// PairsConfig controls the notebook pair consistency check.
type PairsConfig struct {
	// Formats are the file extensions (without dot) that form a pair.
	// A pair is two files with the same directory and basename whose
	// extensions both appear here.
	Formats []string `yaml:"formats"`
	// Include restricts pair discovery to these path prefixes.
	Include []string `yaml:"include"`
}

// LinksConfig controls the markdown link check.
type LinksConfig struct {
	// External enables HTTP probing of absolute URLs.
	External bool `yaml:"external"`
	// Timeout bounds each external probe (Go duration string).
	Timeout string `yaml:"timeout"`
	// Concurrency bounds simultaneous external probes.
	Concurrency int `yaml:"concurrency"`
	// Exclude holds URL regexes never probed.
	Exclude []string `yaml:"exclude"`
}

// ExternalTimeout parses the configured timeout, defaulting to 10s.
func (l LinksConfig) ExternalTimeout() time.Duration {
	if l.Timeout == "" {
		return 10 * time.Second
	}
	d, err := time.ParseDuration(l.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// ADRConfig controls the architecture decision record check.
type ADRConfig struct {
	// Dir is the ADR directory relative to the repo root.
	Dir string `yaml:"dir"`
	// Statuses is the allowed status vocabulary.
	Statuses []string `yaml:"statuses"`
}

// CommitsConfig controls the commit message linter.
type CommitsConfig struct {
	// Types is the allowed conventional-commit type vocabulary.
	Types []string `yaml:"types"`
	// SubjectMax is the maximum subject line length.
	SubjectMax int `yaml:"subject_max"`
	// BodyMax is the maximum body line length (0 disables).
	BodyMax int `yaml:"body_max"`
	// Range overrides the default lint range (upstream..HEAD).
	Range string `yaml:"range"`
	// FallbackCount is how many commits to lint when no upstream exists.
	FallbackCount int `yaml:"fallback_count"`
}

// SecretsConfig controls the credential scanner.
type SecretsConfig struct {
	// AllowPaths holds path regexes whose findings are suppressed.
	AllowPaths []string `yaml:"allow_paths"`
	// AllowValues holds regexes for known-benign matched values.
	AllowValues []string `yaml:"allow_values"`
	// Entropy is the minimum Shannon entropy for generic matches.
	Entropy float64 `yaml:"entropy"`
}

// HooksConfig controls installed git hook behavior.
type HooksConfig struct {
	// Block makes hook findings fail the git operation. When false the
	// hooks print findings but let the operation proceed.
	Block *bool `yaml:"block"`
}

// Blocking reports whether hooks should fail on findings (default true).
func (h HooksConfig) Blocking() bool {
	return h.Block == nil || *h.Block
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Checks:  []string{"pairs", "links", "adr", "commits", "secrets"},
		Exclude: []string{".git", "vendor", "node_modules"},
		Pairs: PairsConfig{
			Formats: []string{"ipynb", "md"},
		},
		Links: LinksConfig{
			Timeout:     "10s",
			Concurrency: 8,
		},
		ADR: ADRConfig{
			Dir:      "docs/adr",
			Statuses: []string{"proposed", "accepted", "rejected", "deprecated", "superseded"},
		},
		Commits: CommitsConfig{
			Types: []string{
				"feat", "fix", "docs", "style", "refactor",
				"perf", "test", "build", "ci", "chore", "revert",
			},
			SubjectMax:    72,
			BodyMax:       100,
			FallbackCount: 20,
		},
		Secrets: SecretsConfig{
			Entropy: 3.5,
		},
	}
}

// Load reads the configuration file from the given repo root, layering it
// over the defaults. A missing file is not an error; a malformed one is a
// user error.
func Load(root string) (*Config, error) {
	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		path = filepath.Join(root, altFileName)
		data, err = os.ReadFile(path)
	}
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read "+path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, output.NewUserError(fmt.Sprintf("invalid config %s: %v", path, err))
	}
	return cfg, nil
}

// Parse decodes YAML config bytes over the defaults.
// Unknown keys are rejected so typos surface instead of silently
// disabling a check.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// knownChecks is the set of check names accepted in the checks list.
var knownChecks = map[string]bool{
	"pairs":   true,
	"links":   true,
	"adr":     true,
	"commits": true,
	"secrets": true,
}

// validate rejects values the checks cannot act on.
func (c *Config) validate() error {
	for _, name := range c.Checks {
		if !knownChecks[name] {
			return fmt.Errorf("unknown check %q", name)
		}
	}
	if len(c.Pairs.Formats) < 2 {
		return fmt.Errorf("pairs.formats needs at least two extensions, got %v", c.Pairs.Formats)
	}
	if c.Links.Timeout != "" {
		if _, err := time.ParseDuration(c.Links.Timeout); err != nil {
			return fmt.Errorf("links.timeout: %w", err)
		}
	}
	return nil
}
