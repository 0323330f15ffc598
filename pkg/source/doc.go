// Package source describes where documents (profiles, OpenAPI specs) come
// from and the contract for fetching them.
package source
