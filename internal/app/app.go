package app

import (
	"io"
	"log/slog"

	"github.com/vk/pycacher/internal/compiler"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	compiler compiler.Compiler
}

// NewApp is the constructor for the main application. cfg must already be
// resolved (see Resolve). Console notices go to outW and logs to logW. When
// c is nil the app compiles with the configured Python interpreter.
func NewApp(outW, logW io.Writer, cfg *Config, c compiler.Compiler) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	if c == nil {
		c = compiler.NewPython(cfg.Python, cfg.OptimizeLevel())
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		compiler: c,
	}
}

// Logger returns the application's logger. This is primarily for testing.
func (a *App) Logger() *slog.Logger {
	return a.logger
}
