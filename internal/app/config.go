package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vk/pycacher/internal/config"
	"github.com/vk/pycacher/internal/ctxlog"
	"github.com/vk/pycacher/internal/hcl"
	"github.com/vk/pycacher/internal/linefilter"
	"github.com/vk/pycacher/internal/yamlconfig"
)

// Defaults used when neither a flag nor the config file sets a value.
const (
	DefaultSourceRoot = "python_stdlib"
	DefaultDestRoot   = "compiled_python_stdlib"
	DefaultStripMode  = "naive"
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
	DefaultOptimize   = -1
)

// Config holds all the necessary configuration for an App instance to run.
// Empty strings and a nil Optimize mean "not set".
type Config struct {
	SourceRoot string
	DestRoot   string
	ConfigPath string // .hcl, .yaml or .yml
	InitPath   string // write a starter config here instead of running

	Python    string
	Optimize  *int
	StripMode string

	LogFormat string
	LogLevel  string
}

// NewConfig validates the values that are set and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if err := cfg.validateSet(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultLoaders returns the config file loaders keyed by extension.
func DefaultLoaders() config.Registry {
	yamlLoader := yamlconfig.NewLoader()
	return config.Registry{
		".hcl":  hcl.NewLoader(),
		".yaml": yamlLoader,
		".yml":  yamlLoader,
	}
}

// Resolve layers the config file (if any) and the built-in defaults under
// the values already set in flags, then validates the result. flags is not
// modified.
func Resolve(ctx context.Context, flags *Config, loaders config.Registry) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := *flags

	if cfg.ConfigPath != "" {
		loader, err := loaders.LoaderFor(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		model, err := loader.Load(ctx, cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg.merge(model)
		logger.Debug("Config file merged.", "path", cfg.ConfigPath)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// merge fills every unset field from the config file model. Enumerated
// values are lowercased the same way the flags are.
func (c *Config) merge(m *config.Model) {
	setIfEmpty(&c.SourceRoot, m.SourceRoot)
	setIfEmpty(&c.DestRoot, m.DestRoot)
	setIfEmpty(&c.StripMode, strings.ToLower(m.StripMode))
	setIfEmpty(&c.LogLevel, strings.ToLower(m.LogLevel))
	setIfEmpty(&c.LogFormat, strings.ToLower(m.LogFormat))
	setIfEmpty(&c.Python, m.PythonExecutable())
	if c.Optimize == nil {
		if level, ok := m.OptimizeLevel(); ok {
			c.Optimize = &level
		}
	}
}

func (c *Config) applyDefaults() {
	setIfEmpty(&c.SourceRoot, DefaultSourceRoot)
	setIfEmpty(&c.DestRoot, DefaultDestRoot)
	setIfEmpty(&c.StripMode, DefaultStripMode)
	setIfEmpty(&c.LogLevel, DefaultLogLevel)
	setIfEmpty(&c.LogFormat, DefaultLogFormat)
	if c.Optimize == nil {
		level := DefaultOptimize
		c.Optimize = &level
	}
}

// validate checks a fully resolved config.
func (c *Config) validate() error {
	if c.SourceRoot == "" {
		return errors.New("source root is a required configuration field and cannot be empty")
	}
	if c.DestRoot == "" {
		return errors.New("destination root is a required configuration field and cannot be empty")
	}
	return c.validateSet()
}

// validateSet checks only the fields that carry a value.
func (c *Config) validateSet() error {
	if c.StripMode != "" {
		if _, err := linefilter.ParseMode(c.StripMode); err != nil {
			return err
		}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", c.LogFormat)
	}
	if c.Optimize != nil && (*c.Optimize < -1 || *c.Optimize > 2) {
		return fmt.Errorf("invalid optimize level %d: must be -1, 0, 1 or 2", *c.Optimize)
	}
	return nil
}

// StripModeValue returns the parsed strip mode, falling back to Naive.
func (c *Config) StripModeValue() linefilter.Mode {
	mode, err := linefilter.ParseMode(c.StripMode)
	if err != nil {
		return linefilter.Naive
	}
	return mode
}

// OptimizeLevel returns the optimization level, or DefaultOptimize if unset.
func (c *Config) OptimizeLevel() int {
	if c.Optimize == nil {
		return DefaultOptimize
	}
	return *c.Optimize
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
