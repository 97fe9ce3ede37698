// Package config holds the engine's build-time settings: which roles are
// enabled, how wide-field (u64/i64) values are packed on the wire, and
// whether classification diagnostics abort the build or are only
// returned alongside it.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// WideFieldMode selects how a u64/i64 field is packed onto the wire.
type WideFieldMode string

const (
	// WideFieldSplitHalves packs a 64-bit field as two 32-bit halves, low
	// half first, one mask/diff bit covering both (DESIGN.md's Open
	// Question 1 resolution). This is the only mode this build supports;
	// the option exists so a future wire revision has somewhere to land.
	WideFieldSplitHalves WideFieldMode = "split-halves"

	// DefaultMaxFields represents the default for MaxFields. 32 is the
	// hard bound spec.md places on a single record's field count; a
	// smaller value here only tightens the build-time check.
	DefaultMaxFields = 32
)

// GeneratorConfig is the engine's build-time configuration.
type GeneratorConfig struct {
	// WideField selects the 64-bit packing strategy.
	WideField WideFieldMode `yaml:"wide_field"`

	// StrictMode, when true, turns every classification diagnostic
	// (spec.md §4.1's "discouraged" findings) into a build failure
	// instead of a warning returned alongside a successful Registry.
	StrictMode bool `yaml:"strict_mode"`

	// MaxFields overrides the per-record field-count bound. Must be in
	// (0, 32]; out-of-range values are clamped back to the default by
	// NewConfig.
	MaxFields int `yaml:"max_fields"`

	// EnabledRoles restricts which roles BuildWithConfig accepts; a record tagged
	// with a role missing from this set is rejected at build time. An
	// empty set (the default) accepts every role.
	EnabledRoles []string `yaml:"enabled_roles"`
}

// Option is a functional option that mutates a GeneratorConfig during
// construction.
type Option func(*GeneratorConfig)

// WithStrictMode sets StrictMode.
func WithStrictMode(strict bool) Option {
	return func(c *GeneratorConfig) { c.StrictMode = strict }
}

// WithMaxFields sets MaxFields. A non-positive or over-bound value resets
// to DefaultMaxFields.
func WithMaxFields(n int) Option {
	return func(c *GeneratorConfig) {
		if n <= 0 || n > DefaultMaxFields {
			c.MaxFields = DefaultMaxFields
			return
		}
		c.MaxFields = n
	}
}

// WithEnabledRoles restricts BuildWithConfig to the given role names.
func WithEnabledRoles(roles ...string) Option {
	return func(c *GeneratorConfig) { c.EnabledRoles = roles }
}

// DefaultConfig is the configuration used when none is provided.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		WideField:  WideFieldSplitHalves,
		StrictMode: false,
		MaxFields:  DefaultMaxFields,
	}
}

// NewConfig constructs a GeneratorConfig from the given options, starting
// from DefaultConfig.
func NewConfig(opts ...Option) GeneratorConfig {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxFields <= 0 || cfg.MaxFields > DefaultMaxFields {
		cfg.MaxFields = DefaultMaxFields
	}
	if cfg.WideField == "" {
		cfg.WideField = WideFieldSplitHalves
	}
	return cfg
}

// Load reads a GeneratorConfig from a YAML file at path, filling in
// defaults for any field the file omits.
func Load(path string) (GeneratorConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return GeneratorConfig{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return GeneratorConfig{}, err
	}

	if cfg.MaxFields <= 0 || cfg.MaxFields > DefaultMaxFields {
		cfg.MaxFields = DefaultMaxFields
	}
	if cfg.WideField == "" {
		cfg.WideField = WideFieldSplitHalves
	}
	return cfg, nil
}

// RoleEnabled reports whether roleName is permitted under cfg. An empty
// EnabledRoles set permits every role.
func (c GeneratorConfig) RoleEnabled(roleName string) bool {
	if len(c.EnabledRoles) == 0 {
		return true
	}
	for _, r := range c.EnabledRoles {
		if r == roleName {
			return true
		}
	}
	return false
}
