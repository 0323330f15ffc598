package datagen

import (
	"context"

	"github.com/goliatone/go-datagen/internal/loader"
	"github.com/goliatone/go-datagen/internal/openapi/importer"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/report"
	"github.com/goliatone/go-datagen/pkg/source"
)

// NewLoader constructs a document loader while keeping the concrete type
// hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return loader.New(source.NewLoaderOptions(options...))
}

// NewImporter constructs the kin-openapi backed profile importer.
func NewImporter(options ...pkgopenapi.ImporterOption) pkgopenapi.Importer {
	return importer.New(pkgopenapi.NewImporterOptions(options...))
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// CheckProfile reduces every field of an in-memory profile.
func CheckProfile(ctx context.Context, p profile.Profile, options ...orchestrator.Option) (report.Report, error) {
	reports, err := orchestrator.New(options...).Check(ctx, orchestrator.Request{Profile: &p})
	if err != nil {
		return report.Report{}, err
	}
	return reports[0], nil
}

// ViolateRule reports every alternative way of breaking the named rule while
// keeping the others.
func ViolateRule(ctx context.Context, p profile.Profile, rule string, options ...orchestrator.Option) ([]report.Report, error) {
	return orchestrator.New(options...).Check(ctx, orchestrator.Request{Profile: &p, ViolatedRule: rule})
}
