package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"bluebook/internal/app"
	"bluebook/internal/config"
	apperrors "bluebook/internal/errors"
	"bluebook/internal/files"
	"bluebook/internal/infrastructure"
	"bluebook/internal/picker"
	"bluebook/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(apperrors.ExitCode(err))
}

// cliFlags holds the raw command line values. Report settings only override
// the loaded configuration when the flag was given.
type cliFlags struct {
	file           string
	pick           bool
	sheet          string
	stdout         string
	format         string
	countsCSV      string
	noCSV          bool
	modsCSV        string
	modsSummaryCSV string
	fillDown       bool
	bom            bool
	open           bool
	configPath     string
	metricsFile    string
	logLevel       string
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	f := &cliFlags{}

	cmd := &cobra.Command{
		Use:   config.BinaryName + " [--file WORKBOOK]",
		Short: "Count quotes and labor edits per technician in a Blue Book workbook",
		Long: `bluebook reads a Blue Book export (.xlsx), counts the distinct quotes each
technician created and, from the comments on the labor column, which labor
values were edited up, down or not at all.

The quote counts are printed to stdout as CSV and written next to the
workbook as <name>_counts.csv. Without --file an interactive picker opens
when stdin is a terminal; otherwise the newest workbook in ./data is used.`,
		Version:       contracts.GetFullVersionString(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, f, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "workbook to read")
	fl.BoolVar(&f.pick, "pick", false, "choose the workbook interactively")
	fl.StringVar(&f.sheet, "sheet", config.DefaultSheet, "sheet to read, or ALL")
	fl.StringVar(&f.stdout, "stdout", config.StdoutCounts, "table printed to stdout: counts, summary, detail or none")
	fl.StringVar(&f.format, "format", config.FormatCSV, "stdout format: csv or table")
	fl.StringVar(&f.countsCSV, "csv", "", "quote count CSV (default <workbook>_counts.csv)")
	fl.BoolVar(&f.noCSV, "no-csv", false, "do not write the quote count CSV")
	fl.StringVar(&f.modsCSV, "mods-csv", "", "labor modification detail CSV")
	fl.StringVar(&f.modsSummaryCSV, "mods-summary-csv", "", "labor modification summary CSV")
	fl.BoolVar(&f.fillDown, "fill-down", false, "reuse the technician above for blank technician cells")
	fl.BoolVar(&f.bom, "bom", false, "prefix CSV files with a UTF-8 byte order mark")
	fl.BoolVar(&f.open, "open", false, "open the first written file when done")
	fl.StringVar(&f.configPath, "config", "", "configuration file (YAML)")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile")
	fl.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.MarkFlagsMutuallyExclusive("csv", "no-csv")
	cmd.MarkFlagsMutuallyExclusive("file", "pick")

	return cmd
}

func run(cmd *cobra.Command, f *cliFlags, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()

	tracing, err := infrastructure.InitializeTracing(cfg.Tracing, stderr, logger)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize tracing", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx); err != nil {
			logger.Warn("Failed to flush traces", slog.String("error", err.Error()))
		}
	}()

	logger.Debug("Starting report",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	workbook, picked, err := resolveWorkbook(f, stdin, stderr, logger)
	if err != nil {
		return err
	}
	config.PathsFor(workbook).LogPathResolution(logger)

	opts := app.OptionsFromConfig(cfg, workbook)
	switch {
	case f.noCSV:
		opts.CountsCSV = ""
	case f.countsCSV != "":
		opts.CountsCSV = f.countsCSV
	}
	opts.ModsCSV = f.modsCSV
	opts.ModsSummaryCSV = f.modsSummaryCSV
	opts.Open = f.open || picked

	_, err = app.NewRunner(logger, tracing.Tracer, stdout).Run(cmd.Context(), opts)
	return err
}

// loadConfig layers the changed flags over the loaded configuration.
func loadConfig(cmd *cobra.Command, f *cliFlags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}

	changed := cmd.Flags().Changed
	if changed("sheet") {
		cfg.Report.Sheet = f.sheet
	}
	if changed("stdout") {
		cfg.Report.Stdout = f.stdout
	}
	if changed("format") {
		cfg.Report.Format = f.format
	}
	if changed("fill-down") {
		cfg.Report.FillDown = f.fillDown
	}
	if changed("bom") {
		cfg.Report.BOMPrefix = f.bom
	}
	if changed("metrics-file") {
		cfg.Metrics.TextfilePath = f.metricsFile
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, apperrors.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// resolveWorkbook returns the workbook to read and whether it came from the
// picker.
func resolveWorkbook(f *cliFlags, stdin io.Reader, stderr io.Writer, logger *slog.Logger) (string, bool, error) {
	if f.file != "" {
		return f.file, false, nil
	}

	startDir := config.PickerStartDir()
	if f.pick || isTerminal(stdin) {
		path, err := picker.Run(startDir, stdin, stderr)
		if errors.Is(err, picker.ErrCancelled) {
			return "", false, apperrors.NewInputError("no workbook selected", err)
		}
		if err != nil {
			return "", false, apperrors.NewInputError("file picker failed", err)
		}
		return path, true, nil
	}

	latest, ok, err := files.NewDiscovery(startDir).LatestWorkbook(startDir)
	if err != nil {
		return "", false, apperrors.NewInputError("no --file given and no workbook directory to search", err).
			WithContext("directory", startDir)
	}
	if !ok {
		return "", false, apperrors.NewInputError("no --file given and no workbook found in "+startDir, apperrors.ErrFileNotFound).
			WithContext("directory", startDir)
	}
	logger.Info("Using latest workbook",
		slog.String("file", latest.Path),
		slog.Time("modified", latest.ModTime))
	return latest.Path, false, nil
}

func isTerminal(r io.Reader) bool {
	file, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
