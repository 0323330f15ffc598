package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-datagen/internal/prompt"
	"github.com/goliatone/go-datagen/pkg/restrictions"
)

// errContradiction signals that at least one field admits no value. The
// report has already been written when it is returned.
var errContradiction = errors.New("profile contains contradictory fields")

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

type app struct {
	stdout      io.Writer
	stderr      io.Writer
	interactive func() bool
	prompt      prompt.Driver

	logLevel   string
	configPath string

	logger zerolog.Logger
	config config
}

func newApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		interactive: func() bool {
			fd := os.Stdin.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		},
		prompt: prompt.NewSurvey(),
		logger: zerolog.Nop(),
		config: defaultConfig(),
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "datagen",
		Short:         "Check data generation profiles for contradictory constraints",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "warn", "log level (trace, debug, info, warn, error)")
	flags.StringVar(&a.configPath, "config", "", "YAML file overriding the engine limits")

	root.AddCommand(newCheckCommand(a))
	root.AddCommand(newImportCommand(a))
	root.AddCommand(newValidateCommand(a))
	root.AddCommand(newVersionCommand(a))
	return root
}

func (a *app) setup() error {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(a.logLevel)))
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", a.logLevel, err)
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        a.stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()

	if a.configPath == "" {
		return nil
	}
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger.Debug().Str("config", a.configPath).Msg("configuration loaded")
	return nil
}

func (a *app) limits() restrictions.Limits {
	return a.config.Limits
}

func newVersionCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the datagen version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(a.stdout, version)
			return err
		},
	}
}
