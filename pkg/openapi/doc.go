// Package openapi exposes the contract for deriving a data profile from the
// component schemas of an OpenAPI document. The implementation lives under
// internal/openapi to keep kin-openapi hidden from consumers.
package openapi
