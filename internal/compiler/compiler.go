// Package compiler defines the "compile source to artifact" capability the
// pipeline drives, and a CPython implementation of it.
package compiler

import (
	"context"
	"strings"
)

// Compiler turns one source file into one compiled artifact.
//
// src is the file handed to the compiler (the cleaned scratch copy), dest is
// the artifact to create or overwrite, and displayPath is the name the
// compiled code and its diagnostics should report (the original source).
//
// A *CompileError means the compiler rejected the source. Any other error is
// an environment failure and should abort the run.
type Compiler interface {
	Compile(ctx context.Context, src, dest, displayPath string) error
}

// Func adapts an ordinary function to the Compiler interface.
type Func func(ctx context.Context, src, dest, displayPath string) error

// Compile calls f.
func (f Func) Compile(ctx context.Context, src, dest, displayPath string) error {
	return f(ctx, src, dest, displayPath)
}

// CompileError reports that the compiler rejected a source file.
type CompileError struct {
	Source string // path of the original source file
	Output string // diagnostic text produced by the compiler
	Err    error  // underlying cause, if any
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if msg := strings.TrimSpace(e.Output); msg != "" {
		return msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "compilation failed"
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error {
	return e.Err
}
