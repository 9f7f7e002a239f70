package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doclink/doclink/internal/config"
	"github.com/doclink/doclink/internal/history"
	doclog "github.com/doclink/doclink/internal/log"
	"github.com/doclink/doclink/internal/model"
	"github.com/doclink/doclink/internal/report"
	"github.com/doclink/doclink/internal/scanner"
)

// errViolationsFound signals that the check completed and found broken
// references. Execute maps it to exit status 2; it must never be printed,
// the report already went to stdout.
var errViolationsFound = errors.New("broken internal references found")

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a documentation directory for broken internal links",
		Long: `Check enumerates the HTML files directly under the documentation root,
extracts href and src attribute values, and verifies that every internal
value resolves to an existing file or directory.

Values starting with http, mailto:, #, or data: are external and are never
resolved. Violations are reported in discovery order: documents in
enumeration order, and within a document href occurrences before src
occurrences.

Examples:
  # Check the default docs directory
  doclink check

  # Check a different directory
  doclink check --root site/public

  # Only match real HTML attributes instead of the raw text pattern
  doclink check --parser html

  # Output JSON report
  doclink check --json

  # Write a Markdown report for a CI summary
  doclink check --markdown --output check.md

Configuration file (.doclink) example:
  defaults:
    ignorePatterns:
      - "vendor/*"
  roots:
    docs:
      attributes:
        - href
        - src
        - poster
      parser: html`,
		Args: cobra.NoArgs,
		RunE: runCheckCmd,
	}

	// Check behavior flags
	cmd.Flags().StringP("root", "r", config.DefaultRoot,
		"Documentation root directory to check")
	cmd.Flags().StringSliceP("attribute", "a", config.DefaultAttributeKinds(),
		"Attribute kinds to extract, in order")
	cmd.Flags().StringSlice("ignore", nil,
		"Glob patterns of reference values to skip (e.g. 'vendor/*')")
	cmd.Flags().StringP("parser", "p", config.ParserText,
		"Extraction mode: 'text' (raw pattern scan) or 'html' (structural parse)")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .doclink in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-save", false,
		"Do not save the result to the check history database")

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildCheckConfig(cmd)
	if err != nil {
		return err
	}

	return runConfiguredCheck(cmd, cfg)
}

// runDefaultCheck is the root command's action: a check with defaults, so
// the bare binary reproduces the original zero-flag contract.
func runDefaultCheck(cmd *cobra.Command, _ []string) error {
	cfg := config.NewConfig()
	loadDiscoveredConfigFile(cfg)
	return runConfiguredCheck(cmd, cfg)
}

// runConfiguredCheck validates the config, wires logging and signal
// handling, and runs the check.
func runConfiguredCheck(cmd *cobra.Command, cfg *config.Config) error {
	cfg.ApplyRootConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	cfg.Verbose = getVerboseFlag(cmd)
	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runCheck(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildCheckConfig creates a Config from cobra command flags.
func buildCheckConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Root, err = cmd.Flags().GetString("root")
	if err != nil {
		return nil, err
	}

	cfg.AttributeKinds, err = cmd.Flags().GetStringSlice("attribute")
	if err != nil {
		return nil, err
	}

	cfg.IgnorePatterns, err = cmd.Flags().GetStringSlice("ignore")
	if err != nil {
		return nil, err
	}

	cfg.Parser, err = cmd.Flags().GetString("parser")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Config-file overrides must not clobber flags the user actually
	// passed, including ones spelled identically to the defaults.
	cfg.Explicit = config.ExplicitFlags{
		AttributeKinds: cmd.Flags().Changed("attribute"),
		IgnorePatterns: cmd.Flags().Changed("ignore"),
		Parser:         cmd.Flags().Changed("parser"),
	}

	// Load per-root configurations from the config file.
	// If the user explicitly specified a config file path, error if not
	// found. If no path was specified, silently use an empty config.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.RootConfigs, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noSave, err := cmd.Flags().GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noSave

	return cfg, nil
}

// loadDiscoveredConfigFile loads the .doclink file if one is discoverable.
// Used by the default (flagless) run; discovery failures are not errors.
func loadDiscoveredConfigFile(cfg *config.Config) {
	configPath := config.FindConfigFile("")
	if configPath == "" {
		return
	}
	if f, err := config.LoadConfigFile(configPath); err == nil {
		cfg.RootConfigs = f
	}
}

// setupLogger creates a structured logger based on verbosity setting.
// Logs go to stderr; stdout is reserved for the report. Absolute paths in
// attributes are rewritten relative to the working directory so CI log
// output is stable across machines.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return slog.New(handler)
	}
	return slog.New(doclog.NewPathHandler(handler, cwd))
}

// runCheck executes the check and reports the result.
func runCheck(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting check",
		"root", cfg.Root,
		"parser", cfg.Parser,
		"attributes", cfg.AttributeKinds,
	)

	s := scanner.New(cfg.Root,
		scanner.WithAttributeKinds(cfg.AttributeKinds),
		scanner.WithExternalPrefixes(cfg.ExternalPrefixes),
		scanner.WithIgnorePatterns(cfg.IgnorePatterns),
		scanner.WithExtractor(newExtractor(cfg)),
		scanner.WithLogger(logger),
	)

	checkReport, err := s.Check(ctx)
	if err != nil {
		return err
	}

	if err := outputReport(cfg, checkReport); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	// History persistence is best-effort: a storage failure must not
	// change the check's exit status.
	if cfg.SaveHistory {
		saveCheckReport(ctx, cfg, checkReport, logger)
	}

	if !checkReport.Passed() {
		return errViolationsFound
	}
	return nil
}

// newExtractor selects the extractor for the configured parser.
func newExtractor(cfg *config.Config) scanner.Extractor {
	if cfg.Parser == config.ParserHTML {
		return scanner.NewDOMExtractor(cfg.AttributeKinds...)
	}
	return scanner.NewTextExtractor(cfg.AttributeKinds...)
}

// outputReport outputs the check report in the requested format.
func outputReport(cfg *config.Config, checkReport *model.CheckReport) error {
	// Determine output destination
	var output *os.File
	toStdout := cfg.ReportFile == ""
	if toStdout {
		output = os.Stdout
	} else {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output)
	case toStdout:
		w = report.NewSimpleWriter(output, report.WithColor())
	default:
		w = report.NewSimpleWriter(output)
	}

	_, err := w.Write(checkReport)
	return err
}

// saveCheckReport saves the report to the history database.
// Failures are logged and swallowed.
func saveCheckReport(ctx context.Context, cfg *config.Config, checkReport *model.CheckReport, logger *slog.Logger) {
	db, err := history.Open(cfg.DBDir, history.DefaultOptions())
	if err != nil {
		logger.Warn("failed to open history database", "dir", cfg.DBDir, "error", err)
		return
	}
	defer db.Close()

	id, err := db.SaveCheckReport(ctx, checkReport)
	if err != nil {
		logger.Warn("failed to save check report", "error", err)
		return
	}
	logger.Info("check report saved", "id", id, "db", db.Path())
}
