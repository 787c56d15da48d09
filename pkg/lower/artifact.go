package lower

// File is one named text blob in a generated bundle. Name is a relative
// path inside the project layout (e.g. "src/lib.rs", "Anchor.toml").
type File struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Artifact is the bundle produced by one Generate call: the instruction
// modules, state declarations, aggregate entry module, test suite, and
// the two manifests, plus the derived program-flow summary. Files are in
// a fixed deterministic order.
type Artifact struct {
	ProgramName string      `json:"program_name"`
	Files       []File      `json:"files"`
	Flow        ProgramFlow `json:"flow"`
}

// File returns the file with the given name.
func (a *Artifact) File(name string) (File, bool) {
	for _, f := range a.Files {
		if f.Name == name {
			return f, true
		}
	}
	return File{}, false
}

// ProgramFlow summarizes how the generated instructions relate: which
// are entry points, the dependency-respecting execution order, and the
// typed data flow along each resolvable connection.
type ProgramFlow struct {
	EntryPoints    []string       `json:"entry_points"`
	ExecutionOrder []string       `json:"execution_order"`
	DataFlow       []DataFlowEdge `json:"data_flow"`
}

// DataFlowEdge is one resolvable connection expressed in display names
// and port types.
type DataFlowEdge struct {
	From     string `json:"from"`
	To       string `json:"to"`
	DataType string `json:"data_type"`
	Required bool   `json:"required"`
}
