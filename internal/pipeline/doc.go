// Package pipeline walks a source tree and turns every .py file into a
// compiled artifact at the mirrored path under a destination root.
//
// Files are handled one at a time. For each file the pipeline cleans the text
// with linefilter, writes it to a scratch file next to the source, hands the
// scratch file to a compiler.Compiler and then removes the scratch file,
// whatever the outcome. A compile error is reported and skipped. Any other
// error stops the run.
package pipeline
