// Package text renders reports as plain text from an embedded template.
package text

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"

	"github.com/goliatone/go-datagen/pkg/render"
	rendertemplate "github.com/goliatone/go-datagen/pkg/render/template"
	"github.com/goliatone/go-datagen/pkg/render/template/gotemplate"
	"github.com/goliatone/go-datagen/pkg/report"
)

// Name is the registry key of the text renderer.
const Name = "text"

const templatePath = "templates/report.tpl"

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can start a
// custom bundle from it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate bundle. It must contain
// templates/report.tpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads the bundle from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a template engine, bypassing the bundle
// options.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New builds the renderer, defaulting to the embedded bundle.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithName(Name),
			gotemplate.WithFS(cfg.templateFS),
		)
		if err != nil {
			return nil, fmt.Errorf("text renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}
	return &Renderer{templates: renderer}, nil
}

// MustNew panics when New fails. The embedded bundle always loads.
func MustNew(options ...Option) *Renderer {
	r, err := New(options...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Renderer) Name() string { return Name }

func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render executes the report template.
func (r *Renderer) Render(ctx context.Context, reports []report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("text renderer: template renderer is nil")
	}

	views := make([]report.View, 0, len(reports))
	for _, rep := range reports {
		views = append(views, rep.View())
	}
	result, err := r.templates.RenderTemplate(templatePath, map[string]any{
		"reports": views,
	})
	if err != nil {
		return nil, fmt.Errorf("text renderer: render template: %w", err)
	}
	return []byte(result), nil
}
