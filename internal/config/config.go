// Package config defines calculator configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) initializer to build a Config with defaults.
// - All functions accept context.Context as the first parameter.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/hacor/pkg/logger"
	"github.com/okian/hacor/pkg/metrics"
)

// Output formats understood by the renderers.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Output selects how results are printed: text or json.
	Output string `koanf:"output"`

	// StrictPoints rejects point values outside the component catalogs.
	// Off by default.
	StrictPoints bool `koanf:"strict_points"`

	// BatchWorkers bounds concurrent case evaluation in batch runs.
	BatchWorkers int `koanf:"batch_workers"`

	// MetricsFile, when set, receives the metrics registry in text
	// exposition format after each command.
	MetricsFile string `koanf:"metrics_file"`

	// MetricsEnabled turns metric collection on or off.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// MetricsNamespace is the first segment of every metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLabels are constant labels added to every metric, e.g. a ward
	// or site name. YAML only.
	MetricsLabels map[string]string `koanf:"metrics_labels"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:     "warn",
		LogFormat:    logger.FormatText,
		Output:       OutputText,
		BatchWorkers: runtime.NumCPU(),

		MetricsEnabled:   true,
		MetricsNamespace: metrics.DefaultNamespace,
	}
}

// Validate reports the first invalid field wrapped with ErrInvalidConfig.
func (c *Config) Validate() error {
	if !logger.ValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case logger.FormatText, logger.FormatJSON:
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch strings.ToLower(c.Output) {
	case OutputText, OutputJSON:
	default:
		return fmt.Errorf("%w: unknown output %q", ErrInvalidConfig, c.Output)
	}
	if c.BatchWorkers <= 0 {
		return fmt.Errorf("%w: batch_workers must be positive, got %d", ErrInvalidConfig, c.BatchWorkers)
	}
	if !metrics.ValidNamespace(c.MetricsNamespace) {
		return fmt.Errorf("%w: invalid metrics_namespace %q", ErrInvalidConfig, c.MetricsNamespace)
	}
	for name := range c.MetricsLabels {
		if !metrics.ValidLabelName(name) {
			return fmt.Errorf("%w: invalid metrics_labels key %q", ErrInvalidConfig, name)
		}
	}
	return nil
}
