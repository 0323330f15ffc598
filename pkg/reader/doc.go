// Package reader turns wire-level constraint records into validated atomic
// constraints.
//
// Every supported type code maps to a Parser in a table built once at
// package initialisation. Parsers validate the operand eagerly (shape, kind,
// global numeric bounds, length ranges, calendar dates) and fail with a
// profile.ValidationError that names the field and the constraint code, so
// nothing downstream needs to re-check an operand.
package reader
