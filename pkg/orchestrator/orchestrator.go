package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-datagen/internal/loader"
	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/render"
	"github.com/goliatone/go-datagen/pkg/renderers/structured"
	"github.com/goliatone/go-datagen/pkg/renderers/text"
	"github.com/goliatone/go-datagen/pkg/report"
	"github.com/goliatone/go-datagen/pkg/source"
)

const defaultRendererName = text.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom document loader.
func WithLoader(l source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = l
	}
}

// WithFactory injects a field spec factory, typically one configured with
// custom limits.
func WithFactory(f *fieldspec.Factory) Option {
	return func(o *Orchestrator) {
		o.factory = f
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits one.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates loading a profile, reading its constraints,
// reducing every field and rendering the result.
type Orchestrator struct {
	loader          source.Loader
	factory         *fieldspec.Factory
	registry        *render.Registry
	defaultRenderer string
	logger          zerolog.Logger
}

// New constructs an Orchestrator. Missing dependencies are initialised with
// the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		logger:          zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = loader.New(source.NewLoaderOptions())
	}
	if o.factory == nil {
		o.factory = fieldspec.NewFactory()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry(text.MustNew(), structured.NewJSON(), structured.NewYAML())
	}
}

// Request describes a profile check.
type Request struct {
	// Source identifies where the profile lives. Optional when Document or
	// Profile is supplied.
	Source source.Source

	// Document bypasses the loader.
	Document *source.Document

	// Profile bypasses loading and decoding.
	Profile *profile.Profile

	// Format of the document; derived from the source location when empty.
	Format profile.Format

	// ViolatedRule, when set, reports every alternative way of breaking the
	// named rule instead of the profile as written.
	ViolatedRule string

	// Renderer names the renderer for Render. Empty uses the default.
	Renderer string
}

// Check loads and reduces the profile. It returns one report for the profile
// as written, or one per violation alternative when ViolatedRule is set.
// Contradictions are reported in the result, not as errors.
func (o *Orchestrator) Check(ctx context.Context, req Request) ([]report.Report, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := o.resolveProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	compiled, err := Compile(p)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: read profile: %w", err)
	}
	o.logger.Debug().
		Int("fields", compiled.Fields.Len()).
		Int("rules", len(compiled.Rules)).
		Msg("profile compiled")

	if req.ViolatedRule == "" {
		r, err := o.reduce(ctx, compiled.Fields, compiled.Rules)
		if err != nil {
			return nil, err
		}
		return []report.Report{r}, nil
	}

	alternatives, err := compiled.ViolationAlternatives(req.ViolatedRule)
	if err != nil {
		return nil, err
	}
	out := make([]report.Report, 0, len(alternatives))
	for i, rules := range alternatives {
		r, err := o.reduce(ctx, compiled.Fields, rules)
		if err != nil {
			return nil, err
		}
		r.Violated = req.ViolatedRule
		r.Alternative = i
		out = append(out, r)
	}
	return out, nil
}

// Render runs Check and renders the reports.
func (o *Orchestrator) Render(ctx context.Context, req Request) ([]byte, error) {
	reports, err := o.Check(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.RenderReports(ctx, req.Renderer, reports)
}

// RenderReports renders reports produced by an earlier Check with the named
// renderer. An empty name uses the default.
func (o *Orchestrator) RenderReports(ctx context.Context, name string, reports []report.Report) ([]byte, error) {
	renderer, err := o.rendererFor(name)
	if err != nil {
		return nil, err
	}
	output, err := renderer.Render(ctx, reports)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

func (o *Orchestrator) reduce(ctx context.Context, fields profile.Fields, rules []RuleConstraints) (report.Report, error) {
	grouped := byField(rules)
	var out report.Report
	for _, field := range fields.List() {
		if err := ctx.Err(); err != nil {
			return report.Report{}, err
		}
		cs := grouped[field.Name]
		spec, ok, err := o.factory.Reduce(field, cs)
		if err != nil {
			return report.Report{}, fmt.Errorf("orchestrator: reduce %s: %w", field, err)
		}
		if !ok {
			o.logger.Debug().Str("field", field.Name).Int("constraints", len(cs)).Msg("field is contradictory")
		}
		out.Fields = append(out.Fields, report.Field{
			Field:       field,
			Constraints: cs,
			Spec:        spec,
			Possible:    ok,
		})
	}
	return out, nil
}

func (o *Orchestrator) resolveProfile(ctx context.Context, req Request) (profile.Profile, error) {
	if req.Profile != nil {
		return *req.Profile, nil
	}
	doc, err := o.resolveDocument(ctx, req)
	if err != nil {
		return profile.Profile{}, err
	}
	format := req.Format
	if format == "" {
		format = profile.FormatFromPath(doc.Location())
	}
	p, err := profile.Decode(doc.Raw(), format)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("orchestrator: %w", err)
	}
	return p, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, req Request) (source.Document, error) {
	if req.Document != nil {
		return *req.Document, nil
	}
	if req.Source == nil {
		return source.Document{}, errors.New("orchestrator: source, document or profile is required")
	}
	doc, err := o.loader.Load(ctx, req.Source)
	if err != nil {
		return source.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return doc, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	target := name
	if target == "" {
		target = o.defaultRenderer
	}
	renderer, err := o.registry.Get(target)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: %w", err)
	}
	return renderer, nil
}
