package lower

import (
	"bytes"
	"fmt"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// Fixed account layout: 8-byte discriminator, 32-byte authority pubkey,
// 8-byte data counter, 1-byte bump.
const accountLen = "8 + 32 + 8 + 1"

// stateModule renders the state.rs declarations: one fixed-shape record
// per account-like node plus its serialized-size constant and the count
// of graph connections touching it.
func stateModule(nodes []flow.Node, connections []flow.Connection) string {
	accounts := flow.Accounts(nodes)
	typeNames := make([]string, len(accounts))
	for i, n := range accounts {
		typeNames[i] = TypeName(n.Name)
	}
	typeNames = uniqueNames(typeNames, func(s string) string { return s })

	var buf bytes.Buffer
	buf.WriteString("use anchor_lang::prelude::*;\n")

	for i, n := range accounts {
		touching := 0
		for _, c := range connections {
			if c.SourceNodeID == n.ID || c.TargetNodeID == n.ID {
				touching++
			}
		}

		buf.WriteString("\n#[account]\n")
		fmt.Fprintf(&buf, "pub struct %s {\n", typeNames[i])
		buf.WriteString("    pub authority: Pubkey,\n")
		buf.WriteString("    pub data: u64,\n")
		buf.WriteString("    pub bump: u8,\n")
		buf.WriteString("}\n\n")
		fmt.Fprintf(&buf, "impl %s {\n", typeNames[i])
		fmt.Fprintf(&buf, "    pub const LEN: usize = %s;\n", accountLen)
		fmt.Fprintf(&buf, "    pub const CONNECTIONS: usize = %d;\n", touching)
		buf.WriteString("}\n")
	}

	return buf.String()
}
