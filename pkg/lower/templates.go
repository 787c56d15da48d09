package lower

// Recognized behavioral node categories. Anything else falls through to
// the default template.
const (
	CategoryTransfer  = "transfer"
	CategoryMint      = "mint"
	CategoryBurn      = "burn"
	CategoryStake     = "stake"
	CategorySwap      = "swap"
	CategoryVote      = "vote"
	CategoryValidator = "validator"
)

// bodyTemplate returns the canned instruction body for a node category.
// Bodies are comment plus msg! scaffolding only; the generated program
// is a skeleton the user fills in.
func bodyTemplate(kind string) string {
	switch kind {
	case CategoryTransfer:
		return `    // Transfer: move value between the bound accounts.
    msg!("transfer: amount validated, executing movement");
`
	case CategoryMint:
		return `    // Mint: create new units under the program authority.
    msg!("mint: supply increased under program authority");
`
	case CategoryBurn:
		return `    // Burn: permanently remove units from circulation.
    msg!("burn: supply reduced");
`
	case CategoryStake:
		return `    // Stake: lock value against the bound state account.
    msg!("stake: position recorded");
`
	case CategorySwap:
		return `    // Swap: exchange between two bound balances at the quoted rate.
    msg!("swap: quote applied");
`
	case CategoryVote:
		return `    // Vote: tally a ballot against the bound governance account.
    msg!("vote: ballot counted");
`
	case CategoryValidator:
		return `    // Validator: check invariants before downstream instructions run.
    msg!("validator: preconditions hold");
`
	default:
		return `    // Custom logic for this module.
    msg!("executing module logic");
`
	}
}
