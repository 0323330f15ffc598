package datagen_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-datagen"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/source"
)

func sampleProfile() profile.Profile {
	return profile.Profile{
		Fields: []profile.Field{
			{Name: "price", Type: profile.FieldTypeNumeric},
			{Name: "colour", Type: profile.FieldTypeString},
		},
		Rules: []profile.RuleDecl{
			{
				Rule: "price is a small positive number",
				Constraints: []profile.Record{
					{Field: "price", Is: "greaterThan", Value: 0},
					{Field: "price", Is: "lessThanOrEqualTo", Value: 10},
				},
			},
			{
				Rule: "colour is primary",
				Constraints: []profile.Record{
					{Field: "colour", Is: "inSet", Values: []any{"red", "green", "blue"}},
				},
			},
		},
	}
}

func TestCheckProfile(t *testing.T) {
	r, err := datagen.CheckProfile(context.Background(), sampleProfile())
	require.NoError(t, err)
	require.True(t, r.Possible())

	colour, ok := r.Lookup("colour")
	require.True(t, ok)
	require.True(t, colour.Spec.Permits("red"))
	require.False(t, colour.Spec.Permits("purple"))
}

func TestViolateRule(t *testing.T) {
	reports, err := datagen.ViolateRule(context.Background(), sampleProfile(), "colour is primary")
	require.NoError(t, err)
	require.Len(t, reports, 1)

	colour, ok := reports[0].Lookup("colour")
	require.True(t, ok)
	require.False(t, colour.Spec.Permits("red"))
	require.True(t, colour.Spec.Permits("purple"))

	_, err = datagen.ViolateRule(context.Background(), sampleProfile(), "unknown")
	require.Error(t, err)
}

func TestNewImporter(t *testing.T) {
	doc, err := datagen.NewLoader().Load(context.Background(), source.FromFile("examples/fixtures/orders-openapi.yaml"))
	require.NoError(t, err)

	im := datagen.NewImporter(pkgopenapi.WithRequiredNotNull(false))
	p, err := im.Import(context.Background(), doc, "Instrument")
	require.NoError(t, err)
	require.Equal(t, "isin", p.Fields[0].Name)

	r, err := datagen.CheckProfile(context.Background(), p)
	require.NoError(t, err)
	require.True(t, r.Possible())
}
