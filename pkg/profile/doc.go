// Package profile holds the wire-level vocabulary shared by the constraint
// engine: declared fields and their datatypes, the rule context every
// constraint is attributed to, the raw constraint records produced by the
// profile loader, and the ValidationError reported when a record is malformed.
// Profiles can be decoded from JSON or YAML; JSON numbers are kept as
// json.Number so numeric operands reach the readers without float rounding.
package profile
