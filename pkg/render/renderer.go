package render

import (
	"context"

	"github.com/goliatone/go-datagen/pkg/report"
)

// Renderer converts reports into a byte representation (text, JSON, YAML).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, reports []report.Report) ([]byte, error)
}
