package lower

import (
	"bytes"
	"fmt"
)

// ProgramIDPlaceholder is the fixed program identifier emitted into
// declare_id! and Anchor.toml. It is the Anchor template placeholder;
// deployment replaces it.
const ProgramIDPlaceholder = "Fg6PaFpoGXkYsidMpWTK6W2BeZ7FEfcYkg476zPFsLnS"

// entryModule renders lib.rs: module re-exports, the program id
// placeholder, and the validate_flow hook that logs a caller-supplied
// instruction sequence. The hook performs no real validation; it is the
// attachment point for flow checks.
func entryModule(programName string, entries []string) string {
	var buf bytes.Buffer
	buf.WriteString("use anchor_lang::prelude::*;\n\n")
	buf.WriteString("pub mod state;\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "pub mod %s;\n", e)
	}
	buf.WriteString("\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "pub use %s::*;\n", e)
	}
	if len(entries) > 0 {
		buf.WriteString("\n")
	}

	fmt.Fprintf(&buf, "declare_id!(\"%s\");\n\n", ProgramIDPlaceholder)

	buf.WriteString("#[program]\n")
	fmt.Fprintf(&buf, "pub mod %s {\n", programName)
	buf.WriteString("    use super::*;\n\n")
	buf.WriteString("    pub fn validate_flow(_ctx: Context<ValidateFlow>, steps: Vec<String>) -> Result<()> {\n")
	buf.WriteString("        for (i, step) in steps.iter().enumerate() {\n")
	buf.WriteString("            msg!(\"flow step {}: {}\", i, step);\n")
	buf.WriteString("        }\n")
	buf.WriteString("        Ok(())\n")
	buf.WriteString("    }\n")
	buf.WriteString("}\n\n")
	buf.WriteString("#[derive(Accounts)]\npub struct ValidateFlow {}\n")

	return buf.String()
}
