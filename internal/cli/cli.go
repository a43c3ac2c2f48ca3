package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/pycacher/internal/app"
)

// Version information, set at build time with -ldflags "-X".
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns an app.Config holding
// only the values the user set, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("pycacher", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
pycacher - strip comments from a Python tree and precompile it to .pyc files.

Usage:
  pycacher [options] [SRC [DEST]]

Arguments:
  SRC
    Source tree to scan for .py files (default "python_stdlib").
  DEST
    Destination root for the mirrored .pyc tree (default "compiled_python_stdlib").

Options:
`)
		flagSet.PrintDefaults()
	}

	srcFlag := flagSet.String("src", "", "Source tree to scan for .py files.")
	destFlag := flagSet.String("dest", "", "Destination root for compiled artifacts.")
	configFlag := flagSet.String("config", "", "Path to a .hcl, .yaml or .yml config file.")
	initFlag := flagSet.String("init", "", "Write a starter HCL config to this path and exit.")
	pythonFlag := flagSet.String("python", "", "Python interpreter used to compile (default \"python3\").")
	optimizeFlag := flagSet.Int("optimize", -1, "py_compile optimization level: -1, 0, 1 or 2.")
	stripFlag := flagSet.String("strip", "", "Comment stripping: 'naive' or 'lexical' (default \"naive\").")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json' (default \"text\").")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error' (default \"info\").")
	versionFlag := flagSet.Bool("version", false, "Show version information.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if *versionFlag {
		fmt.Fprintf(output, "pycacher %s\n", Version)
		fmt.Fprintf(output, "Build Date: %s\n", BuildDate)
		fmt.Fprintf(output, "Git Commit: %s\n", GitCommit)
		return nil, true, nil
	}

	if flagSet.NArg() > 2 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %s", strings.Join(flagSet.Args(), " "))}
	}

	src, dest := *srcFlag, *destFlag
	if src == "" && flagSet.NArg() > 0 {
		src = flagSet.Arg(0)
	}
	if dest == "" && flagSet.NArg() > 1 {
		dest = flagSet.Arg(1)
	}
	slog.Debug("Roots determined.", "src", src, "dest", dest)

	// -optimize has a meaningful zero value, so only forward it when given.
	var optimize *int
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "optimize" {
			optimize = optimizeFlag
		}
	})

	config, err := app.NewConfig(app.Config{
		SourceRoot: src,
		DestRoot:   dest,
		ConfigPath: *configFlag,
		InitPath:   *initFlag,
		Python:     *pythonFlag,
		Optimize:   optimize,
		StripMode:  strings.ToLower(*stripFlag),
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
