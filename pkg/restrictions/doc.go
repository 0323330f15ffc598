// Package restrictions defines the typed value-space limits a field
// specification carries: numeric ranges with a decimal granularity, datetime
// ranges with a calendar granularity, string length and pattern sets, boolean
// subsets and the null policy. Every restriction is an immutable value and
// supports pairwise intersection. A contradiction is reported through the
// boolean of the comma-ok result; intersection never returns an error.
package restrictions
