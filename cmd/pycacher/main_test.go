package main

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/pycacher/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, &bytes.Buffer{}, args)

	// --- Assert ---
	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_BadConfigFileIsUsageError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "pycacher.hcl")
	require.NoError(t, os.WriteFile(path, []byte("source = {\n"), 0o644))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, []string{"-config", path})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 2, exitErr.Code)
	require.Contains(t, exitErr.Message, "failed to parse HCL file")
}

func TestRun_Init(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pycacher.hcl")
	out := &bytes.Buffer{}

	err := run(context.Background(), out, &bytes.Buffer{}, []string{"-init", path, "-strip", "lexical"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Wrote starter config to "+path)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `strip`)
	require.Contains(t, string(raw), `"lexical"`)
}

func TestRun_MissingSourceRootFails(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	args := []string{"-python", filepath.Join(tmp, "no-python"), filepath.Join(tmp, "missing"), filepath.Join(tmp, "dest")}

	err := run(context.Background(), &bytes.Buffer{}, &bytes.Buffer{}, args)

	require.Error(t, err)
	require.Contains(t, err.Error(), "source root does not exist")
}

func TestRun_EndToEnd(t *testing.T) {
	t.Parallel()
	python, err := exec.LookPath("python3")
	if err != nil {
		t.Skip("python3 not available on PATH")
	}

	// --- Arrange ---
	tmp := t.TempDir()
	src := filepath.Join(tmp, "python_stdlib")
	dest := filepath.Join(tmp, "compiled_python_stdlib")
	require.NoError(t, os.MkdirAll(filepath.Join(src, "a", "b"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a", "b", "file.py"),
		[]byte("x = 1  # set x\n    y = 2\n# full-line comment\n\nz = x + y\n"), 0o644))
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}

	// --- Act ---
	err = run(context.Background(), out, logs, []string{"-python", python, src, dest})

	// --- Assert ---
	require.NoError(t, err, "logs:\n%s", logs.String())
	require.FileExists(t, filepath.Join(dest, "a", "b", "file.pyc"))
	require.NoFileExists(t, filepath.Join(src, "a", "b", "file.py.temp"))
	require.Contains(t, out.String(), "Compiled: "+filepath.Join(src, "a", "b", "file.py"))
	require.Contains(t, out.String(), "1 compiled, 0 failed")
}
