package lower

import (
	"bytes"
	"fmt"

	"github.com/anchorsmith/anchorsmith/pkg/flow"
)

// boundAccount is an account-like node wired into a behavioral node,
// surfacing as a mutable account field in the instruction's context.
type boundAccount struct {
	field string // snake_case field name
	typ   string // Rust struct name from state.rs
}

// boundAccounts gathers the account-like sources feeding node, in
// connection insertion order, deduplicated by source node. Connections
// whose source does not resolve are skipped.
func boundAccounts(node flow.Node, connections []flow.Connection, idx map[string]flow.Node) []boundAccount {
	var out []boundAccount
	seen := make(map[string]bool)
	for _, c := range connections {
		if c.TargetNodeID != node.ID {
			continue
		}
		src, ok := idx[c.SourceNodeID]
		if !ok || !src.IsAccount() || seen[src.ID] {
			continue
		}
		seen[src.ID] = true
		out = append(out, boundAccount{field: EntryName(src.Name), typ: TypeName(src.Name)})
	}
	return out
}

// instructionModule renders one behavioral node as an Anchor instruction
// module: the entry function with a category-keyed body, an advance-state
// statement per bound account, and the Accounts context with every bound
// account constrained to the fixed authority signer.
func instructionModule(node flow.Node, entry string, accounts []boundAccount) string {
	ctxType := TypeName(entry)

	var buf bytes.Buffer
	buf.WriteString("use anchor_lang::prelude::*;\n")
	if len(accounts) > 0 {
		buf.WriteString("use crate::state::*;\n")
	}
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "pub fn %s(ctx: Context<%s>) -> Result<()> {\n", entry, ctxType)
	fmt.Fprintf(&buf, "    msg!(\"instruction: %s\");\n", node.Name)
	buf.WriteString(bodyTemplate(node.Kind))
	for _, a := range accounts {
		fmt.Fprintf(&buf, "    let %s = &mut ctx.accounts.%s;\n", a.field, a.field)
		fmt.Fprintf(&buf, "    %s.data = %s.data.checked_add(1).unwrap();\n", a.field, a.field)
	}
	buf.WriteString("    Ok(())\n")
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "#[derive(Accounts)]\npub struct %s<'info> {\n", ctxType)
	for _, a := range accounts {
		buf.WriteString("    #[account(mut, has_one = authority)]\n")
		fmt.Fprintf(&buf, "    pub %s: Account<'info, %s>,\n", a.field, a.typ)
	}
	buf.WriteString("    pub authority: Signer<'info>,\n")
	buf.WriteString("}\n")

	return buf.String()
}
