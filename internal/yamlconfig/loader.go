// Package yamlconfig is the YAML implementation of config.Loader. It accepts
// the same keys as the HCL format. String values may reference environment
// variables as $NAME or ${NAME}.
package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/pycacher/internal/config"
	"github.com/vk/pycacher/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader reads pycacher.yaml files.
type Loader struct {
	// Getenv resolves $NAME references. Defaults to os.Getenv.
	Getenv func(string) string
}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{Getenv: os.Getenv}
}

type fileRoot struct {
	Source      string        `yaml:"source"`
	Destination string        `yaml:"destination"`
	Strip       string        `yaml:"strip"`
	LogLevel    string        `yaml:"log_level"`
	LogFormat   string        `yaml:"log_format"`
	Compiler    *compilerNode `yaml:"compiler"`
}

type compilerNode struct {
	Python   string `yaml:"python"`
	Optimize *int   `yaml:"optimize"`
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var root fileRoot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", path, err)
	}

	expand := func(s string) string { return os.Expand(s, l.getenv()) }
	model := &config.Model{
		SourceRoot: expand(root.Source),
		DestRoot:   expand(root.Destination),
		StripMode:  root.Strip,
		LogLevel:   root.LogLevel,
		LogFormat:  root.LogFormat,
	}
	if root.Compiler != nil {
		model.Compiler = &config.Compiler{
			Python:   expand(root.Compiler.Python),
			Optimize: root.Compiler.Optimize,
		}
	}

	logger.Debug("YAML loading complete.", "source", model.SourceRoot, "destination", model.DestRoot)
	return model, nil
}

func (l *Loader) getenv() func(string) string {
	if l.Getenv == nil {
		return os.Getenv
	}
	return l.Getenv
}
