package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/source"
)

// SchemaVersion is stamped on imported profiles.
const SchemaVersion = "0.1"

// Importer implements pkgopenapi.Importer using kin-openapi.
type Importer struct {
	options pkgopenapi.ImporterOptions
	logger  zerolog.Logger
}

var _ pkgopenapi.Importer = (*Importer)(nil)

// New constructs an Importer with the given options.
func New(options pkgopenapi.ImporterOptions) *Importer {
	return &Importer{
		options: options,
		logger:  options.Logger.With().Str("component", "openapi-importer").Logger(),
	}
}

func (im *Importer) load(ctx context.Context, doc source.Document) (*openapi3.T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi importer: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: im.options.AllowExternalRefs,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi importer: load document: %w", err)
	}
	if im.options.Validate {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi importer: validate: %w", err)
		}
	}
	return spec, nil
}

func componentSchemas(spec *openapi3.T) openapi3.Schemas {
	if spec == nil || spec.Components == nil {
		return nil
	}
	return spec.Components.Schemas
}

// Components lists the object schemas declared under components/schemas.
func (im *Importer) Components(ctx context.Context, doc source.Document) ([]string, error) {
	spec, err := im.load(ctx, doc)
	if err != nil {
		return nil, err
	}
	var names []string
	for name, ref := range componentSchemas(spec) {
		if ref == nil || ref.Value == nil || len(ref.Value.Properties) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Import derives a profile from the named component schema.
func (im *Importer) Import(ctx context.Context, doc source.Document, component string) (profile.Profile, error) {
	spec, err := im.load(ctx, doc)
	if err != nil {
		return profile.Profile{}, err
	}
	if component == "" {
		return profile.Profile{}, errors.New("openapi importer: component name is required")
	}
	ref, ok := componentSchemas(spec)[component]
	if !ok || ref == nil || ref.Value == nil {
		return profile.Profile{}, fmt.Errorf("openapi importer: component %q not found", component)
	}
	schema := ref.Value
	if len(schema.Properties) == 0 {
		return profile.Profile{}, fmt.Errorf("openapi importer: component %q has no properties", component)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	out := profile.Profile{SchemaVersion: SchemaVersion}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return profile.Profile{}, err
		}
		prop := schema.Properties[name]
		if prop == nil || prop.Value == nil {
			im.logger.Debug().Str("property", name).Msg("skipping unresolved property")
			continue
		}
		field, records, ok := im.convertProperty(name, prop.Value, required[name])
		if !ok {
			continue
		}
		out.Fields = append(out.Fields, field)
		if len(records) > 0 {
			out.Rules = append(out.Rules, profile.RuleDecl{
				Rule:        fmt.Sprintf("%s.%s schema", component, name),
				Constraints: records,
			})
		}
	}
	if len(out.Fields) == 0 {
		return profile.Profile{}, fmt.Errorf("openapi importer: component %q has no supported properties", component)
	}

	im.logger.Info().
		Str("schema", component).
		Int("fields", len(out.Fields)).
		Int("rules", len(out.Rules)).
		Msg("imported component schema")
	return out, nil
}
