package pipeline

// Result is the outcome for one source file.
type Result struct {
	Source string
	Dest   string
	// Err is the *compiler.CompileError for a rejected file, nil on success.
	Err error
}

// Succeeded reports whether the artifact was written.
func (r Result) Succeeded() bool {
	return r.Err == nil
}

// Report lists the results of a run in processing order.
type Report struct {
	Results []Result
}

// Compiled counts files that produced an artifact.
func (r *Report) Compiled() int {
	n := 0
	for _, res := range r.Results {
		if res.Succeeded() {
			n++
		}
	}
	return n
}

// Failed counts files the compiler rejected.
func (r *Report) Failed() int {
	return len(r.Results) - r.Compiled()
}
