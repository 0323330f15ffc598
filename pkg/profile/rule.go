package profile

// Rule is the rule context a constraint is attributed to. Generating violated
// data flips a rule into its violated counterpart so output can be traced back
// to the rule that was deliberately broken.
type Rule struct {
	Description string
	violated    bool
}

// NewRule returns a rule with the given description.
func NewRule(description string) Rule {
	return Rule{Description: description}
}

// Violate returns the violated counterpart of r. Violating an already
// violated rule returns it unchanged.
func (r Rule) Violate() Rule {
	r.violated = true
	return r
}

// IsViolated reports whether r is a violated counterpart.
func (r Rule) IsViolated() bool {
	return r.violated
}

func (r Rule) String() string {
	desc := r.Description
	if desc == "" {
		desc = "unnamed rule"
	}
	if r.violated {
		return "Violated: " + desc
	}
	return desc
}
