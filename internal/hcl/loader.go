package hcl

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/pycacher/internal/config"
	"github.com/vk/pycacher/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	// Environ supplies the `env` object. Defaults to os.Environ.
	Environ func() []string
}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{Environ: os.Environ}
}

// fileRoot is the shape of a pycacher.hcl file.
type fileRoot struct {
	Source      string         `hcl:"source,optional"`
	Destination string         `hcl:"destination,optional"`
	Strip       string         `hcl:"strip,optional"`
	LogLevel    string         `hcl:"log_level,optional"`
	LogFormat   string         `hcl:"log_format,optional"`
	Compiler    *compilerBlock `hcl:"compiler,block"`
}

type compilerBlock struct {
	Python   string `hcl:"python,optional"`
	Optimize *int   `hcl:"optimize,optional"`
}

// Load implements config.Loader.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx, err := l.evalContext()
	if err != nil {
		return nil, err
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := translate(&root)
	logger.Debug("HCL loading complete.", "source", model.SourceRoot, "destination", model.DestRoot)
	return model, nil
}

// evalContext exposes the process environment as `env.NAME`.
func (l *Loader) evalContext() (*hcl.EvalContext, error) {
	environ := l.Environ
	if environ == nil {
		environ = os.Environ
	}

	envMap := make(map[string]string)
	for _, kv := range environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		envMap[name] = value
	}

	envVal, err := gocty.ToCtyValue(envMap, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("failed to convert environment for HCL: %w", err)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
	}, nil
}

func translate(root *fileRoot) *config.Model {
	model := &config.Model{
		SourceRoot: root.Source,
		DestRoot:   root.Destination,
		StripMode:  root.Strip,
		LogLevel:   root.LogLevel,
		LogFormat:  root.LogFormat,
	}
	if root.Compiler != nil {
		model.Compiler = &config.Compiler{
			Python:   root.Compiler.Python,
			Optimize: root.Compiler.Optimize,
		}
	}
	return model
}
