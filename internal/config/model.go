package config

// Model is the unified, format-agnostic representation of a config file.
type Model struct {
	SourceRoot string
	DestRoot   string
	StripMode  string
	LogLevel   string
	LogFormat  string
	Compiler   *Compiler
}

// Compiler describes the external compiler to drive.
type Compiler struct {
	Python string
	// Optimize is nil when the file does not set it.
	Optimize *int
}

// PythonExecutable returns the configured interpreter, or "" if unset.
func (m *Model) PythonExecutable() string {
	if m == nil || m.Compiler == nil {
		return ""
	}
	return m.Compiler.Python
}

// OptimizeLevel returns the configured optimization level and whether one
// was set.
func (m *Model) OptimizeLevel() (int, bool) {
	if m == nil || m.Compiler == nil || m.Compiler.Optimize == nil {
		return 0, false
	}
	return *m.Compiler.Optimize, true
}
