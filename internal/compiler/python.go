package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/vk/pycacher/internal/ctxlog"
)

const (
	// DefaultPython is looked up on PATH when no interpreter is configured.
	DefaultPython = "python3"

	// exitCompileError is returned by the driver when py_compile rejects the
	// source (EX_DATAERR).
	exitCompileError = 65
)

// pyDriver runs py_compile with doraise so that syntax errors surface as an
// exit status instead of a message on stdout.
const pyDriver = `import py_compile, sys
try:
    py_compile.compile(sys.argv[1], cfile=sys.argv[2], dfile=sys.argv[3], doraise=True, optimize=int(sys.argv[4]))
except py_compile.PyCompileError as e:
    sys.stderr.write(e.msg)
    sys.exit(65)
`

// Python compiles sources with a CPython interpreter's py_compile module.
type Python struct {
	// Executable is the interpreter to run. Defaults to DefaultPython.
	Executable string
	// Optimize is passed to py_compile: -1 uses the interpreter's own level,
	// 0, 1 and 2 match the -O flags.
	Optimize int
}

// NewPython returns a Python compiler for the given interpreter and
// optimization level.
func NewPython(executable string, optimize int) *Python {
	if executable == "" {
		executable = DefaultPython
	}
	return &Python{Executable: executable, Optimize: optimize}
}

// Compile implements Compiler.
func (p *Python) Compile(ctx context.Context, src, dest, displayPath string) error {
	logger := ctxlog.FromContext(ctx)

	executable := p.Executable
	if executable == "" {
		executable = DefaultPython
	}

	cmd := exec.CommandContext(ctx, executable, "-c", pyDriver, src, dest, displayPath, strconv.Itoa(p.Optimize))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	logger.Debug("Invoking python compiler.", "python", executable, "src", src, "dest", dest)
	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == exitCompileError {
		return &CompileError{Source: displayPath, Output: stderr.String(), Err: err}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return fmt.Errorf("python compiler failed on %s: %w: %s", displayPath, err, msg)
	}
	return fmt.Errorf("python compiler failed on %s: %w", displayPath, err)
}

// Version reports the interpreter's version string, which also verifies that
// the interpreter can be started.
func (p *Python) Version(ctx context.Context) (string, error) {
	executable := p.Executable
	if executable == "" {
		executable = DefaultPython
	}
	out, err := exec.CommandContext(ctx, executable, "--version").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run %s: %w", executable, err)
	}
	return strings.TrimSpace(string(out)), nil
}
