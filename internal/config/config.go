// Package config defines engine configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file and environment variables.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/waterradar/internal/domain/model"
	"golang.org/x/text/language"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DefaultProfile is used when a command does not name a profile.
	DefaultProfile string `koanf:"default_profile"`

	// MaxSelection caps how many waters can be selected for comparison.
	MaxSelection int `koanf:"max_selection"`

	// LoadSeed preloads the built-in sample waters.
	LoadSeed bool `koanf:"load_seed"`

	// MetricsNamespace prefixes every Prometheus metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// Language is the BCP 47 tag used to collate brand names.
	Language string `koanf:"language"`

	// Weights overrides base metric weights, keyed by metric ("na", "tds", ...).
	Weights map[string]float64 `koanf:"weights"`

	// ProfileWeights overrides per-profile weight overlays.
	ProfileWeights map[string]map[string]float64 `koanf:"profile_weights"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		DefaultProfile:   string(model.ProfileEveryday),
		MaxSelection:     5,
		LoadSeed:         true,
		MetricsNamespace: "waterradar",
		Language:         "und",
		Weights:          map[string]float64{},
		ProfileWeights:   map[string]map[string]float64{},
	}
}

// Profile returns the parsed default profile.
func (c *Config) Profile() model.Profile {
	p, _ := model.ParseProfile(c.DefaultProfile)
	return p
}

// LanguageTag returns the parsed collation language.
func (c *Config) LanguageTag() language.Tag {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und
	}
	return tag
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks every field and returns an error wrapping ErrInvalidConfig
// for the first problem found.
func (c *Config) Validate() error {
	if !logLevels[strings.ToLower(strings.TrimSpace(c.LogLevel))] {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if _, ok := model.ParseProfile(c.DefaultProfile); !ok {
		return fmt.Errorf("%w: unknown default_profile %q", ErrInvalidConfig, c.DefaultProfile)
	}
	if c.MaxSelection < 1 {
		return fmt.Errorf("%w: max_selection must be at least 1, got %d", ErrInvalidConfig, c.MaxSelection)
	}
	if strings.TrimSpace(c.MetricsNamespace) == "" {
		return fmt.Errorf("%w: metrics_namespace must not be empty", ErrInvalidConfig)
	}
	if _, err := language.Parse(c.Language); err != nil {
		return fmt.Errorf("%w: language %q: %w", ErrInvalidConfig, c.Language, err)
	}
	if err := validateWeights("weights", c.Weights); err != nil {
		return err
	}
	for name, overlay := range c.ProfileWeights {
		if _, ok := model.ParseProfile(name); !ok {
			return fmt.Errorf("%w: profile_weights: unknown profile %q", ErrInvalidConfig, name)
		}
		if err := validateWeights("profile_weights."+name, overlay); err != nil {
			return err
		}
	}
	return nil
}

func validateWeights(field string, weights map[string]float64) error {
	for key, w := range weights {
		if _, ok := model.ParseMetric(key); !ok {
			return fmt.Errorf("%w: %s: unknown metric %q", ErrInvalidConfig, field, key)
		}
		if w <= 0 {
			return fmt.Errorf("%w: %s.%s must be positive, got %v", ErrInvalidConfig, field, key, w)
		}
	}
	return nil
}
