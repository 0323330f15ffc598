// Package datagen is the entry point to the go-datagen constraint engine.
//
// A profile declares fields and rules; each rule lists constraint records
// such as {"field": "price", "is": "greaterThan", "value": 0}. The engine
// reads every record into a typed atomic constraint (pkg/reader,
// pkg/constraints), merges the constraints of each field into one field
// specification (pkg/fieldspec) and reports fields whose constraints
// contradict each other. Violated variants of a rule are obtained by negating
// its constraints.
//
// The helpers in this package construct the default loader, importer and
// orchestrator without exposing the internal implementations.
package datagen
