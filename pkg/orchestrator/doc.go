// Package orchestrator wires the loader → profile decoder → constraint reader
// → field reducer → renderer pipeline, providing dependency injection
// friendly helpers for consumers that prefer a single entry point.
package orchestrator
