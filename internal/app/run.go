package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vk/pycacher/internal/compiler"
	"github.com/vk/pycacher/internal/ctxlog"
	"github.com/vk/pycacher/internal/hcl"
	"github.com/vk/pycacher/internal/pipeline"
)

// Run compiles the configured source tree. Files the compiler rejects are
// reported on the console and do not make Run fail.
func (a *App) Run(ctx context.Context) (*pipeline.Report, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if py, ok := a.compiler.(*compiler.Python); ok {
		if version, err := py.Version(ctx); err != nil {
			a.logger.Warn("Python interpreter check failed.", "python", py.Executable, "error", err)
		} else {
			a.logger.Debug("Python interpreter found.", "python", py.Executable, "version", version)
		}
	}

	a.logger.Info("Starting compilation.",
		"source", a.config.SourceRoot,
		"destination", a.config.DestRoot,
		"strip", a.config.StripModeValue().String(),
	)
	start := time.Now()

	p := pipeline.New(pipeline.Options{
		SourceRoot: a.config.SourceRoot,
		DestRoot:   a.config.DestRoot,
		StripMode:  a.config.StripModeValue(),
	}, a.compiler, a.outW)

	report, err := p.Run(ctx)
	if err != nil {
		return report, fmt.Errorf("compilation aborted: %w", err)
	}
	p.Summary(report)

	a.logger.Info("Compilation finished.",
		"compiled", report.Compiled(),
		"failed", report.Failed(),
		"elapsed", time.Since(start).String(),
	)
	a.logger.Debug("App.Run method finished.")
	return report, nil
}

// InitConfig writes a starter HCL config at cfg.InitPath, pre-filled with
// the resolved values.
func InitConfig(cfg *Config) error {
	return hcl.WriteStarter(cfg.InitPath, hcl.StarterOptions{
		SourceRoot: cfg.SourceRoot,
		DestRoot:   cfg.DestRoot,
		StripMode:  cfg.StripMode,
		Python:     pythonOrDefault(cfg.Python),
		Optimize:   cfg.OptimizeLevel(),
	})
}

func pythonOrDefault(p string) string {
	if p == "" {
		return compiler.DefaultPython
	}
	return p
}
