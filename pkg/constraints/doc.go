// Package constraints models atomic constraints as a closed sum type. Every
// variant implements Atomic, whose unexported method keeps the set of variants
// fixed to this package, and reports a Kind so callers can switch over it
// exhaustively.
//
// Constraints are immutable values. Negate returns the logical complement on
// the same field: comparisons flip structurally (greater-than becomes
// less-than-or-equal, before becomes after-or-at) and every other variant is
// wrapped in Not. Violated wraps a constraint to re-attribute it to the
// violated counterpart of its rule without changing what it admits.
//
// Equality and hashing are structural over field, kind and operand; the
// owning rule is ignored and regular expressions compare by source text.
package constraints
