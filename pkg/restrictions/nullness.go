package restrictions

// Nullness is the null policy of a field specification.
type Nullness uint8

const (
	NullUnconstrained Nullness = iota
	NullMustBe
	NullMustNot
)

func (n Nullness) String() string {
	switch n {
	case NullMustBe:
		return "must be null"
	case NullMustNot:
		return "must not be null"
	default:
		return "unconstrained"
	}
}

// Intersect combines two policies. The more specific policy wins and the two
// opposite policies admit no value.
func (n Nullness) Intersect(other Nullness) (Nullness, bool) {
	switch {
	case n == other:
		return n, true
	case n == NullUnconstrained:
		return other, true
	case other == NullUnconstrained:
		return n, true
	default:
		return NullUnconstrained, false
	}
}

// PermitsNull reports whether null is a legal value under n.
func (n Nullness) PermitsNull() bool {
	return n != NullMustNot
}

// PermitsValues reports whether non-null values are legal under n.
func (n Nullness) PermitsValues() bool {
	return n != NullMustBe
}
