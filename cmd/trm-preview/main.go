// Package main provides the trm-preview binary entry point.
// trm-preview converts the Historical Thesaurus thematic category
// spreadsheet into a SKOS concept scheme for the Thesaurus of Religious
// Metaphors.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ben-tinc/trm-preview/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "trm-preview"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options holds the command line settings that override configuration.
type options struct {
	configPath   string
	prepared     string
	intermediate string
	format       string
	logLevel     string
	metricsFile  string
}

// layer returns the flag values as a config layer. Unset flags are empty
// and leave the loaded configuration alone.
func (o options) layer(args []string) *config.Config {
	layer := &config.Config{}
	if len(args) == 1 {
		layer.Paths.Input = args[0]
	}
	layer.Paths.Prepared = o.prepared
	layer.Paths.Intermediate = o.intermediate
	layer.Output.Format = o.format
	layer.Metrics.Textfile = o.metricsFile
	return layer
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   appName + " [infile]",
		Short: "Convert HTE thematic categories to SKOS",
		Long: `trm-preview reads the Historical Thesaurus of English thematic category
spreadsheet, assigns identifiers to categories that lack one, rebuilds the
broader links from the category paths and writes:

- a prepared table with the derived columns, for inspection
- the intermediate SKOS graph (Turtle, N-Triples or JSON-LD)

Paths default to files next to the executable.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), opts.logLevel)
			slog.SetDefault(logger)

			cfg, err := config.NewLoader(logger).Load(opts.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.Merge(opts.layer(args))

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			_, err = NewApp(cfg, logger).Run()
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.prepared, "prepared", "p", "", "Path where the prepared table is written (.xlsx or .csv)")
	flags.StringVarP(&opts.intermediate, "intermediate", "i", "", "Path where the intermediate SKOS graph is written")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.format, "format", "", "Graph format (turtle, ntriples, jsonld)")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "Write run metrics to this Prometheus textfile")

	cmd.AddCommand(versionCmd(), initConfigCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Write the default user config if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.NewLoader(newLogger(cmd.ErrOrStderr(), "info")).EnsureUserConfig()
			if err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

func newLogger(w io.Writer, logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
