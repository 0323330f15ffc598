// Package template defines the template engine contract renderers depend on.
// Implementations live in subpackages.
package template
