package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datagen"
	"github.com/goliatone/go-datagen/pkg/fieldspec"
	"github.com/goliatone/go-datagen/pkg/source"
	"github.com/goliatone/go-datagen/pkg/validation"
)

type validateOptions struct {
	satisfiable bool
	json        bool
}

func newValidateCommand(a *app) *cobra.Command {
	opts := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <profile>",
		Short: "Report every malformed constraint record in a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(cmd, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.satisfiable, "satisfiable", false, "also report fields whose constraints admit no value")
	flags.BoolVar(&opts.json, "json", false, "print the result as JSON")
	return cmd
}

func (a *app) runValidate(cmd *cobra.Command, location string, opts *validateOptions) error {
	src, err := source.Parse(location)
	if err != nil {
		return err
	}
	doc, err := datagen.NewLoader(source.WithHTTPFallback(remoteTimeout)).Load(cmd.Context(), src)
	if err != nil {
		return err
	}

	vopts := validation.Options{}
	if opts.satisfiable {
		vopts.Factory = fieldspec.NewFactory(fieldspec.WithLimits(a.limits()))
	}
	result := validation.ValidateProfile(cmd.Context(), doc.Source(), doc.Raw(), vopts)

	if opts.json {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(a.stdout, string(data)); err != nil {
			return err
		}
	} else {
		for _, issue := range result.Issues {
			if _, err := fmt.Fprintln(a.stdout, issue.String()); err != nil {
				return err
			}
		}
	}

	if !result.Valid {
		return fmt.Errorf("%s: %d issue(s)", location, len(result.Issues))
	}
	a.logger.Info().Str("profile", location).Msg("profile is valid")
	return nil
}
