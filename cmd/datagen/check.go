package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datagen"
	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/orchestrator"
	"github.com/goliatone/go-datagen/pkg/source"
)

const remoteTimeout = 30 * time.Second

type checkOptions struct {
	violate  string
	renderer string
	output   string
}

func newCheckCommand(a *app) *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check <profile>",
		Short: "Reduce every field of a profile and report contradictions",
		Long: `check reads a JSON or YAML profile, merges the constraints of every field
and prints the resulting field specifications. With --violate the named rule
is negated and one report is printed per violation alternative.

The command exits with status 2 when any field admits no value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCheck(cmd, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.violate, "violate", "", "rule to violate")
	flags.StringVarP(&opts.renderer, "renderer", "r", "", "output renderer (text, json, yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}

func (a *app) runCheck(cmd *cobra.Command, location string, opts *checkOptions) error {
	src, err := source.Parse(location)
	if err != nil {
		return err
	}

	renderer := opts.renderer
	if renderer == "" {
		renderer = a.config.Renderer
	}

	orch := datagen.NewOrchestrator(
		orchestrator.WithLoader(datagen.NewLoader(source.WithHTTPFallback(remoteTimeout))),
		orchestrator.WithFactory(fieldspec.NewFactory(fieldspec.WithLimits(a.limits()))),
		orchestrator.WithLogger(a.logger),
	)

	ctx := cmd.Context()
	reports, err := orch.Check(ctx, orchestrator.Request{
		Source:       src,
		ViolatedRule: opts.violate,
	})
	if err != nil {
		return err
	}
	output, err := orch.RenderReports(ctx, renderer, reports)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, output, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		a.logger.Info().Str("output", opts.output).Int("reports", len(reports)).Msg("report written")
	} else if _, err := a.stdout.Write(output); err != nil {
		return err
	}

	for _, r := range reports {
		if !r.Possible() {
			for _, f := range r.Contradictions() {
				a.logger.Warn().Str("report", r.Title()).Str("field", f.Field.Name).Msg("field admits no value")
			}
			return errContradiction
		}
	}
	return nil
}
