// Package config loads and normalizes the apidocgen configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/apidocgen/internal/foundation/errors"
	"git.home.luguber.info/inful/apidocgen/internal/linker"
)

// Authority configures one external documentation source. When any
// authorities are configured they replace the built-in table entirely; a
// partial override would make rule ordering surprising.
type Authority struct {
	Prefix       string            `yaml:"prefix"`
	SkipSegments int               `yaml:"skip_segments,omitempty"`
	URLTemplate  string            `yaml:"url_template"`
	Lower        bool              `yaml:"lower,omitempty"`
	Aliases      map[string]string `yaml:"aliases,omitempty"`
}

// Config is the top-level configuration.
type Config struct {
	Input      string `yaml:"input"`      // metadata directory (toc.yml + documents)
	Overwrites string `yaml:"overwrites"` // overwrite documents directory (optional)
	Output     string `yaml:"output"`     // content output directory
	BasePath   string `yaml:"base_path"`  // site URL base for generated pages
	Workers    int    `yaml:"workers"`    // render concurrency

	SkipLinkCheck bool `yaml:"skip_link_check,omitempty"`

	Authorities []Authority `yaml:"authorities,omitempty"`
}

// Load loads configuration from the specified file. Environment variables
// in the YAML content are expanded.
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file not readable").
			WithSeverity(errors.SeverityFatal).
			WithContext("path", configPath).Build()
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "configuration file is not valid yaml").
			WithSeverity(errors.SeverityFatal).
			WithContext("path", configPath).Build()
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output == "" {
		c.Output = "./content"
	}
	if c.BasePath == "" {
		c.BasePath = "api"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

// Validate checks the configuration for missing required fields.
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.ConfigError("input directory is required").Build()
	}
	for i, a := range c.Authorities {
		if a.Prefix == "" || a.URLTemplate == "" {
			return errors.ConfigError(fmt.Sprintf("authority %d needs prefix and url_template", i)).Build()
		}
	}
	return nil
}

// AuthorityRules converts the configured authority table into linker rules.
// Nil when none are configured, letting the linker fall back to its
// built-in table.
func (c *Config) AuthorityRules() []linker.AuthorityRule {
	if len(c.Authorities) == 0 {
		return nil
	}
	rules := make([]linker.AuthorityRule, 0, len(c.Authorities))
	for _, a := range c.Authorities {
		rules = append(rules, linker.AuthorityRule{
			Prefix:       a.Prefix,
			SkipSegments: a.SkipSegments,
			URLTemplate:  a.URLTemplate,
			Lower:        a.Lower,
			Aliases:      a.Aliases,
		})
	}
	return rules
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	example := Config{
		Input:      "./metadata",
		Overwrites: "./overwrites",
		Output:     "./content",
		BasePath:   "api",
		Workers:    4,
	}
	data, err := yaml.Marshal(&example)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "marshal example config").Build()
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write example config").
			WithContext("path", configPath).Build()
	}
	return nil
}
