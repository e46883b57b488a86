package diag

// Code is the stable identifier of whatever produced a diagnostic. Lint
// rules use their rule id (e.g. "no-empty-block"); codes owned by the tool
// itself carry the "bl/" prefix so they can never collide with a rule.
type Code string

const (
	// CodeRuleFailure reports a rule whose internal invariant broke during
	// traversal. The run continues; the rule is muted for that unit.
	CodeRuleFailure Code = "bl/rule-failure"
	// CodeUnanalyzable reports a unit whose AST the front end failed to
	// supply. Other units proceed unaffected.
	CodeUnanalyzable Code = "bl/unanalyzable"
)

func (c Code) String() string { return string(c) }

// IsInternal reports whether the code belongs to the tool rather than a rule.
func (c Code) IsInternal() bool {
	return len(c) > 3 && c[:3] == "bl/"
}
