// Package config defines the format-agnostic configuration model for a
// pycacher run, along with the Loader interface that turns a configuration
// file into that model.
//
// Concrete loaders live in separate packages: internal/hcl for .hcl files
// and internal/yamlconfig for .yaml/.yml files. Every field of the model is
// optional; unset fields are left at their zero value so that the caller can
// layer command-line flags and defaults on top.
package config
