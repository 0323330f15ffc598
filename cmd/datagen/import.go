package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-datagen"
	"github.com/goliatone/go-datagen/internal/prompt"
	pkgopenapi "github.com/goliatone/go-datagen/pkg/openapi"
	"github.com/goliatone/go-datagen/pkg/profile"
	"github.com/goliatone/go-datagen/pkg/source"
)

type importOptions struct {
	component   string
	format      string
	output      string
	force       bool
	validate    bool
	externalRef bool
}

func newImportCommand(a *app) *cobra.Command {
	opts := &importOptions{}
	cmd := &cobra.Command{
		Use:   "import-openapi <document>",
		Short: "Derive a profile from an OpenAPI component schema",
		Long: `import-openapi turns the properties of one component schema into profile
fields and rules. When --component is omitted and the document declares more
than one schema, an interactive terminal is asked to pick one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, args[0], opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.component, "component", "c", "", "component schema to import")
	flags.StringVarP(&opts.format, "format", "f", string(profile.FormatJSON), "profile format (json, yaml)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	flags.BoolVar(&opts.force, "force", false, "overwrite the output file without asking")
	flags.BoolVar(&opts.validate, "validate", false, "validate the document before importing")
	flags.BoolVar(&opts.externalRef, "external-refs", false, "resolve external $ref targets")
	return cmd
}

func (a *app) runImport(cmd *cobra.Command, location string, opts *importOptions) error {
	format := profile.Format(strings.ToLower(opts.format))
	if format != profile.FormatJSON && format != profile.FormatYAML {
		return fmt.Errorf("unsupported --format %q", opts.format)
	}

	src, err := source.Parse(location)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	doc, err := datagen.NewLoader(source.WithHTTPFallback(remoteTimeout)).Load(ctx, src)
	if err != nil {
		return err
	}

	importer := datagen.NewImporter(
		pkgopenapi.WithLogger(a.logger),
		pkgopenapi.WithValidation(opts.validate),
		pkgopenapi.WithExternalRefs(opts.externalRef),
	)

	component := opts.component
	if component == "" {
		if component, err = a.chooseComponent(cmd, importer, doc); err != nil {
			return err
		}
	}

	p, err := importer.Import(ctx, doc, component)
	if err != nil {
		return err
	}
	data, err := profile.Encode(p, format)
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err := a.stdout.Write(data)
		return err
	}
	if !opts.force {
		if err := a.confirmOverwrite(cmd, opts.output); err != nil {
			return err
		}
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info().Str("component", component).Str("output", opts.output).Int("fields", len(p.Fields)).Msg("profile written")
	return nil
}

func (a *app) chooseComponent(cmd *cobra.Command, importer pkgopenapi.Importer, doc source.Document) (string, error) {
	components, err := importer.Components(cmd.Context(), doc)
	if err != nil {
		return "", err
	}
	switch {
	case len(components) == 0:
		return "", fmt.Errorf("%s declares no component schemas", doc.Location())
	case len(components) == 1:
		return components[0], nil
	case !a.interactive():
		return "", fmt.Errorf("--component is required; available: %s", strings.Join(components, ", "))
	}

	idx, err := a.prompt.Select(cmd.Context(), prompt.SelectConfig{
		Message:  "Component schema to import:",
		Options:  components,
		PageSize: 15,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(components) {
		return "", errors.New("no component selected")
	}
	return components[idx], nil
}

func (a *app) confirmOverwrite(cmd *cobra.Command, path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !a.interactive() {
		return fmt.Errorf("%s exists; pass --force to overwrite", path)
	}
	ok, err := a.prompt.Confirm(cmd.Context(), prompt.ConfirmConfig{
		Message: fmt.Sprintf("Overwrite %s?", path),
	})
	if err != nil {
		return err
	}
	if !ok {
		return prompt.ErrAborted
	}
	return nil
}
