package lower

import (
	"bytes"
	"fmt"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// testSuite renders the TypeScript test blob: one case per behavioral
// node plus, when the graph has connections, an integration case walking
// the full execution order. Bodies are logging placeholders; per-step
// assertions are the user's job.
func testSuite(programName string, behavioral []flow.Node, entries []string, connections []flow.Connection, order []string) string {
	entryByID := make(map[string]string, len(behavioral))
	for i, n := range behavioral {
		entryByID[n.ID] = entries[i]
	}

	var buf bytes.Buffer
	buf.WriteString("import * as anchor from \"@coral-xyz/anchor\";\n\n")
	fmt.Fprintf(&buf, "describe(\"%s\", () => {\n", programName)
	buf.WriteString("  const provider = anchor.AnchorProvider.env();\n")
	buf.WriteString("  anchor.setProvider(provider);\n")

	for i, n := range behavioral {
		touching := 0
		for _, c := range connections {
			if c.SourceNodeID == n.ID || c.TargetNodeID == n.ID {
				touching++
			}
		}
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  it(\"%s (%d connections)\", async () => {\n", entries[i], touching)
		fmt.Fprintf(&buf, "    console.log(\"invoke: %s\");\n", entries[i])
		buf.WriteString("  });\n")
	}

	if len(connections) > 0 {
		buf.WriteString("\n  it(\"executes the full instruction flow\", async () => {\n")
		buf.WriteString("    const order = [")
		for i, id := range order {
			if i > 0 {
				buf.WriteString(", ")
			}
			fmt.Fprintf(&buf, "%q", entryByID[id])
		}
		buf.WriteString("];\n")
		buf.WriteString("    for (const step of order) {\n")
		buf.WriteString("      console.log(\"flow:\", step);\n")
		buf.WriteString("    }\n")
		buf.WriteString("  });\n")
	}

	buf.WriteString("});\n")
	return buf.String()
}
