// Package structured renders reports as JSON or YAML documents.
package structured

import (
	"context"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/render"
	"github.com/goliatone/go-datagen/pkg/report"
)

const (
	NameJSON = "json"
	NameYAML = "yaml"
)

type document struct {
	Reports []report.View `json:"reports" yaml:"reports"`
}

func documentOf(reports []report.Report) document {
	doc := document{Reports: make([]report.View, 0, len(reports))}
	for _, r := range reports {
		doc.Reports = append(doc.Reports, r.View())
	}
	return doc
}

// JSON renders indented JSON.
type JSON struct{}

var _ render.Renderer = JSON{}

func NewJSON() JSON { return JSON{} }

func (JSON) Name() string { return NameJSON }

func (JSON) ContentType() string { return "application/json" }

func (JSON) Render(ctx context.Context, reports []report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(documentOf(reports), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("structured: encode json: %w", err)
	}
	return append(data, '\n'), nil
}

// YAML renders a YAML document.
type YAML struct{}

var _ render.Renderer = YAML{}

func NewYAML() YAML { return YAML{} }

func (YAML) Name() string { return NameYAML }

func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Render(ctx context.Context, reports []report.Report) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(documentOf(reports))
	if err != nil {
		return nil, fmt.Errorf("structured: encode yaml: %w", err)
	}
	return data, nil
}
