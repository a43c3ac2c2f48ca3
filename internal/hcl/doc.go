// Package hcl is the HCL implementation of config.Loader. It parses a
// pycacher.hcl file, evaluates its expressions against an `env` object built
// from the process environment, and translates the result into config.Model.
//
// It can also write a commented starter file for `pycacher -init`.
package hcl
