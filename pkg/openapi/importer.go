package openapi

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/source"
)

// Importer converts one component schema of an OpenAPI document into a
// profile. Each supported property becomes a field and its validation
// keywords become one rule of constraint records.
type Importer interface {
	Import(ctx context.Context, doc source.Document, component string) (profile.Profile, error)
	// Components lists the object schemas an Import can target.
	Components(ctx context.Context, doc source.Document) ([]string, error)
}

// ImporterOptions configures an Importer.
type ImporterOptions struct {
	// Logger receives notes about skipped properties and keywords.
	Logger zerolog.Logger

	// AllowExternalRefs lets kin-openapi resolve $ref pointers outside the
	// document.
	AllowExternalRefs bool

	// Validate runs kin-openapi document validation before importing.
	Validate bool

	// RequiredMeansNotNull turns "required" properties into not-null
	// constraints. Enabled by default.
	RequiredMeansNotNull bool
}

// ImporterOption mutates ImporterOptions during construction.
type ImporterOption func(*ImporterOptions)

func WithLogger(logger zerolog.Logger) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Logger = logger
	}
}

func WithExternalRefs(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.AllowExternalRefs = enabled
	}
}

func WithValidation(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.Validate = enabled
	}
}

func WithRequiredNotNull(enabled bool) ImporterOption {
	return func(opts *ImporterOptions) {
		opts.RequiredMeansNotNull = enabled
	}
}

// NewImporterOptions applies options over the defaults.
func NewImporterOptions(options ...ImporterOption) ImporterOptions {
	cfg := ImporterOptions{
		Logger:               zerolog.Nop(),
		RequiredMeansNotNull: true,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
