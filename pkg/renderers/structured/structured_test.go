package structured

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/report"
	"github.com/goliatone/go-datagen/pkg/testsupport"
)

func sampleReports(t *testing.T) []report.Report {
	t.Helper()
	spec, err := fieldspec.ForValue("red")
	require.NoError(t, err)
	return []report.Report{{
		Fields: []report.Field{
			{Field: profile.Field{Name: "colour", Type: profile.FieldTypeString}, Spec: spec, Possible: true},
			{Field: profile.Field{Name: "price", Type: profile.FieldTypeNumeric}},
		},
	}}
}

func TestJSON(t *testing.T) {
	r := NewJSON()
	require.Equal(t, NameJSON, r.Name())
	require.Equal(t, "application/json", r.ContentType())

	out, err := r.Render(context.Background(), sampleReports(t))
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal(out, &doc))
	require.Len(t, doc.Reports, 1)

	view := doc.Reports[0]
	require.Equal(t, "profile", view.Title)
	require.False(t, view.Possible)
	require.Len(t, view.Fields, 2)
	require.Equal(t, []string{`"red"`}, view.Fields[0].Whitelist)
	require.Equal(t, "must not be null", view.Fields[0].Nullness)
	require.False(t, view.Fields[1].Possible)
	require.Empty(t, view.Fields[1].Spec)
}

func TestJSON_Golden(t *testing.T) {
	output, err := NewJSON().Render(context.Background(), sampleReports(t))
	require.NoError(t, err)

	goldenPath := filepath.Join("testdata", "report.json.golden")
	if testsupport.WriteMaybeGolden(t, goldenPath, output) {
		return
	}
	want := testsupport.MustReadGolden(t, goldenPath)
	if diff := testsupport.CompareGolden(string(want), string(output)); diff != "" {
		t.Fatalf("golden mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML(t *testing.T) {
	r := NewYAML()
	require.Equal(t, NameYAML, r.Name())

	out, err := r.Render(context.Background(), sampleReports(t))
	require.NoError(t, err)

	var doc document
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Len(t, doc.Reports, 1)
	require.Equal(t, "colour", doc.Reports[0].Fields[0].Name)
	require.True(t, doc.Reports[0].Fields[0].Possible)
}

func TestRender_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewJSON().Render(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
	_, err = NewYAML().Render(ctx, nil)
	require.ErrorIs(t, err, context.Canceled)
}
