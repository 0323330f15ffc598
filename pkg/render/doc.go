// Package render defines the report renderer contract and a name-keyed
// registry. Implementations live under pkg/renderers.
package render
