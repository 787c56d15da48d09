package lower

import (
	"github.com/anchorsmith/anchorsmith/pkg/errors"
	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// DefaultProgramName names the generated crate when the caller does not
// supply one.
const DefaultProgramName = "generated_program"

// Options configures a Generate call.
type Options struct {
	// ProgramName names the crate, library target, and program module.
	// Must be a valid lowered identifier; defaults to
	// DefaultProgramName.
	ProgramName string `json:"program_name,omitempty"`
}

func (o *Options) setDefaults() error {
	if o.ProgramName == "" {
		o.ProgramName = DefaultProgramName
	}
	return errors.ValidateProgramName(o.ProgramName)
}

// Generate lowers a graph snapshot into the full artifact bundle.
//
// The emitted files, in order: one src/<entry>.rs per behavioral node,
// src/state.rs, src/lib.rs, tests/<program>.ts, Cargo.toml, Anchor.toml.
// Output is byte-identical across calls for identical input; the only
// error case is an invalid program name. The graph itself is never a
// source of errors: unresolved connection endpoints are skipped and
// cycles degrade to the analyzer's partial order.
func Generate(g flow.Graph, opts Options) (*Artifact, error) {
	if err := opts.setDefaults(); err != nil {
		return nil, err
	}

	behavioral := flow.Behavioral(g.Nodes)
	idx := flow.NodeIndex(g.Nodes)

	names := make([]string, len(behavioral))
	for i, n := range behavioral {
		names[i] = n.Name
	}
	entries := uniqueNames(names, EntryName)

	pf := computeFlow(g.Nodes, g.Connections)

	art := &Artifact{ProgramName: opts.ProgramName, Flow: pf}

	for i, n := range behavioral {
		art.Files = append(art.Files, File{
			Name:    "src/" + entries[i] + ".rs",
			Content: instructionModule(n, entries[i], boundAccounts(n, g.Connections, idx)),
		})
	}

	art.Files = append(art.Files, File{
		Name:    "src/state.rs",
		Content: stateModule(g.Nodes, g.Connections),
	})

	art.Files = append(art.Files, File{
		Name:    "src/lib.rs",
		Content: entryModule(opts.ProgramName, entries),
	})

	art.Files = append(art.Files, File{
		Name:    "tests/" + opts.ProgramName + ".ts",
		Content: testSuite(opts.ProgramName, behavioral, entries, g.Connections, pf.ExecutionOrder),
	})

	cargo, err := cargoToml(opts.ProgramName)
	if err != nil {
		return nil, err
	}
	art.Files = append(art.Files, File{Name: "Cargo.toml", Content: cargo})

	anchor, err := anchorToml(opts.ProgramName)
	if err != nil {
		return nil, err
	}
	art.Files = append(art.Files, File{Name: "Anchor.toml", Content: anchor})

	return art, nil
}
