// Package config loads and validates docsearch configuration.
//
// Pipeline shape (roots, denylist, display names, exclude globs) lives in
// a YAML file so the same core can index differently-shaped doc trees.
// Index service credentials come from the environment only and never from
// the config file.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file searched in the working directory.
const DefaultConfigFile = ".docsearch.yaml"

// SourceConfig describes one content family root.
type SourceConfig struct {
	// Root is the directory walked for this source.
	Root string `yaml:"root"`

	// StripPrefix is the leading path removed when deriving URLs.
	StripPrefix string `yaml:"strip_prefix"`

	// Denylist lists exact file paths excluded from this source.
	// Only honored for the guides source.
	Denylist []string `yaml:"denylist,omitempty"`
}

// Config is the complete docsearch configuration.
type Config struct {
	Guides    SourceConfig `yaml:"guides"`
	Reference SourceConfig `yaml:"reference"`

	// Extensions are the content file extensions stripped from URLs.
	Extensions []string `yaml:"extensions"`

	// GeneratedSegment is the path segment generated reference files
	// live under; it is removed during URL derivation.
	GeneratedSegment string `yaml:"generated_segment"`

	// ReferenceMarker is the URL segment reference trees live under.
	ReferenceMarker string `yaml:"reference_marker"`

	// DisplayNames maps short product codes to human-readable names
	// for the reference hierarchy.
	DisplayNames map[string]string `yaml:"display_names"`

	// Exclude are glob patterns skipped during collection.
	Exclude []string `yaml:"exclude"`

	// Workers is the number of concurrent extraction workers.
	// Zero means one per CPU.
	Workers int `yaml:"workers"`
}

// Default returns the configuration for the standard doc tree layout.
func Default() *Config {
	return &Config{
		Guides: SourceConfig{
			Root:        "pages",
			StripPrefix: "pages",
			Denylist: []string{
				"pages/404.mdx",
				"pages/_app.mdx",
				"pages/_document.mdx",
				"pages/faq.mdx",
				"pages/support.mdx",
				"pages/oss.mdx",
			},
		},
		Reference: SourceConfig{
			Root:        "docs/reference",
			StripPrefix: "docs",
		},
		Extensions:       []string{".mdx", ".md"},
		GeneratedSegment: "generated",
		ReferenceMarker:  "reference",
		DisplayNames: map[string]string{
			"auth":       "Auth Server",
			"storage":    "Storage Server",
			"realtime":   "Realtime Server",
			"postgrest":  "PostgREST",
			"cli":        "Command Line Interface",
			"javascript": "JavaScript Library",
			"api":        "Management API",
		},
		Workers: 0,
	}
}

// Load reads configuration from path. An empty path falls back to
// DefaultConfigFile; a missing default file yields Default() unchanged.
// Environment variable DOCSEARCH_WORKERS overrides the worker count.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		path = DefaultConfigFile
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if v := os.Getenv("DOCSEARCH_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Workers = n
		}
	}
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	if c.Guides.Root == "" {
		return fmt.Errorf("guides.root must not be empty")
	}
	if c.Reference.Root == "" {
		return fmt.Errorf("reference.root must not be empty")
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// EffectiveWorkers resolves the worker count, defaulting to one per CPU.
func (c *Config) EffectiveWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// DenySet returns the guide denylist as a set for exact-match lookups.
func (c *Config) DenySet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Guides.Denylist))
	for _, p := range c.Guides.Denylist {
		set[p] = struct{}{}
	}
	return set
}

// StripPrefixes returns the per-source URL strip prefixes keyed by
// source kind.
func (c *Config) StripPrefixes() map[string]string {
	return map[string]string{
		"guide":     c.Guides.StripPrefix,
		"reference": c.Reference.StripPrefix,
	}
}

// Dump renders the effective configuration as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}
