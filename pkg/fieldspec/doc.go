// Package fieldspec describes the set of legal values of one field and
// merges such descriptions.
//
// A FieldSpec combines an optional whitelist, a blacklist, a typed
// restriction, a null policy, a set of must-contain alternatives and an
// optional output format. Specs are immutable values; Merge returns a new
// spec, or false when the two sides admit no common value. Merge is
// commutative and associative under Equal.
//
// Negation is not defined on specs. A violated variant of a rule is built by
// negating its atomic constraints and seeding a spec from each negation.
package fieldspec
