package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"bluebook/internal/config"
	"bluebook/internal/dataprocessing"
	apperrors "bluebook/internal/errors"
	"bluebook/internal/exporter"
	"bluebook/internal/files"
	"bluebook/internal/infrastructure"
	"bluebook/internal/validation"
)

// Options describe one report run. Empty output paths are not written.
type Options struct {
	WorkbookPath   string `validate:"required"`
	Sheet          string
	Stdout         string `validate:"oneof=counts summary detail none"`
	Format         string `validate:"oneof=csv table"`
	CountsCSV      string
	ModsCSV        string
	ModsSummaryCSV string
	BOMPrefix      bool
	FillDown       bool
	HeaderScanRows int `validate:"min=1"`
	Columns        config.ColumnsConfig
	Open           bool
	MetricsFile    string
}

// OptionsFromConfig fills the report options from cfg for the given
// workbook. The quote-count CSV defaults to <stem>_counts.csv next to it.
func OptionsFromConfig(cfg *config.Config, workbook string) Options {
	return Options{
		WorkbookPath:   workbook,
		Sheet:          cfg.Report.Sheet,
		Stdout:         cfg.Report.Stdout,
		Format:         cfg.Report.Format,
		CountsCSV:      config.PathsFor(workbook).CountsCSV,
		BOMPrefix:      cfg.Report.BOMPrefix,
		FillDown:       cfg.Report.FillDown,
		HeaderScanRows: cfg.Report.HeaderScanRows,
		Columns:        cfg.Columns,
		MetricsFile:    cfg.Metrics.TextfilePath,
	}
}

func (o Options) readOptions() dataprocessing.ReadOptions {
	return dataprocessing.ReadOptions{
		Sheet: o.Sheet,
		Columns: dataprocessing.ColumnAliases{
			Technician: o.Columns.Technician,
			QuoteID:    o.Columns.QuoteID,
			Labor:      o.Columns.Labor,
		},
		HeaderScanRows: o.HeaderScanRows,
		FillDown:       o.FillDown,
	}
}

// Result is what a successful (or output-failed) run produced.
type Result struct {
	TraceID string
	Report  dataprocessing.Report
	Written []string
}

// FileOpener launches a written report in the desktop's default application.
type FileOpener interface {
	Open(path string) error
}

// Runner wires the reader, aggregators and emitter into one batch run.
type Runner struct {
	base      *slog.Logger
	logger    *slog.Logger
	tracer    trace.Tracer
	stdout    io.Writer
	opener    FileOpener
	validator *validation.FileValidator
	emitter   *exporter.Emitter
}

// NewRunner creates a runner that prints its stdout table to stdout.
// A nil tracer uses the global provider.
func NewRunner(logger *slog.Logger, tracer trace.Tracer, stdout io.Writer) *Runner {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Runner{
		base:      logger,
		logger:    infrastructure.WithComponent(logger, "runner"),
		tracer:    tracer,
		stdout:    stdout,
		opener:    files.NewOpener(logger),
		validator: validation.NewFileValidator(logger),
		emitter:   exporter.NewEmitter(logger),
	}
}

// WithOpener replaces how written files are opened.
func (r *Runner) WithOpener(o FileOpener) *Runner {
	r.opener = o
	return r
}

// Run reads the workbook once, then emits every requested table. Input and
// schema errors abort before anything is written. Output failures are
// collected per artifact; the returned error is then an output error and
// Result lists what was written.
func (r *Runner) Run(ctx context.Context, opts Options) (result Result, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	result.TraceID = infrastructure.GetTraceID(ctx)
	logger := r.logger.With(slog.String("workbook", opts.WorkbookPath))

	started := time.Now()
	metrics := infrastructure.NewRunMetrics()
	defer func() {
		metrics.Finish(started, err == nil)
		if opts.MetricsFile == "" {
			return
		}
		if merr := metrics.WriteTextfile(opts.MetricsFile); merr != nil {
			logger.WarnContext(ctx, "Failed to write metrics", slog.String("error", merr.Error()))
		}
	}()

	if verr := validator.New().Struct(opts); verr != nil {
		return result, apperrors.NewConfigError("invalid run options", verr)
	}

	ctx, span := infrastructure.StartSpan(ctx, r.tracer, "bluebook.run",
		attribute.String("workbook", opts.WorkbookPath),
		attribute.String("sheet", opts.Sheet))
	defer func() { infrastructure.EndSpan(span, err) }()

	logger.InfoContext(ctx, "Report run started",
		slog.String("sheet", opts.Sheet),
		slog.String("stdout", opts.Stdout))

	report, err := r.read(ctx, opts)
	if err != nil {
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Report run aborted")
		return result, err
	}
	result.Report = report
	metrics.RowsRead.Add(float64(report.Stats.Rows))
	metrics.ObserveResults(report.Quotes, report.Modifications)

	result.Written, err = r.emit(ctx, opts, report)
	if err != nil {
		logger.ErrorContext(ctx, "Report outputs failed",
			slog.Int("written", len(result.Written)),
			slog.String("error", err.Error()))
	}

	if opts.Open && len(result.Written) > 0 {
		// failure is logged by the opener and does not fail the run
		_ = r.opener.Open(result.Written[0])
	}

	logger.InfoContext(ctx, "Report run finished",
		slog.Int("quotes", report.Quotes.Total()),
		slog.Int("modified_rows", len(report.Modifications.Rows)),
		slog.Int("parse_warnings", report.ParseWarnings),
		slog.Int("files_written", len(result.Written)),
		slog.Duration("duration", time.Since(started)))
	return result, err
}

func (r *Runner) read(ctx context.Context, opts Options) (report dataprocessing.Report, err error) {
	ctx, span := infrastructure.StartSpan(ctx, r.tracer, "bluebook.read")
	defer func() { infrastructure.EndSpan(span, err) }()

	if err := r.validator.ValidateWorkbook(opts.WorkbookPath); err != nil {
		return report, err
	}

	report, err = dataprocessing.NewSummarizer(r.base, opts.readOptions()).SummarizeFile(ctx, opts.WorkbookPath)
	if err != nil {
		return report, err
	}
	span.SetAttributes(
		attribute.Int("rows", report.Stats.Rows),
		attribute.Int("sheets", report.Stats.Sheets),
		attribute.Int("parse_warnings", report.ParseWarnings))
	return report, nil
}

// artifact is one requested output file.
type artifact struct {
	path  string
	table exporter.Table
}

func (r *Runner) emit(ctx context.Context, opts Options, report dataprocessing.Report) (written []string, err error) {
	ctx, span := infrastructure.StartSpan(ctx, r.tracer, "bluebook.emit")
	defer func() { infrastructure.EndSpan(span, err) }()

	var errs []error

	if t, ok := stdoutTable(opts.Stdout, report); ok {
		if serr := r.emitter.ToStream(r.stdout, t, opts.Format); serr != nil {
			errs = append(errs, serr)
		}
	}

	for _, a := range artifacts(opts, report) {
		if ferr := r.writeFile(a, opts.BOMPrefix); ferr != nil {
			errs = append(errs, ferr)
			continue
		}
		written = append(written, a.path)
		r.logger.InfoContext(ctx, "Report written",
			slog.String("table", a.table.Name),
			slog.String("path", a.path),
			slog.Int("rows", len(a.table.Rows)))
	}

	span.SetAttributes(attribute.Int("files_written", len(written)))
	return written, errors.Join(errs...)
}

func (r *Runner) writeFile(a artifact, bom bool) error {
	if err := r.validator.ValidateOutputDirectory(filepath.Dir(a.path)); err != nil {
		return err
	}
	return r.emitter.ToFile(a.path, a.table, exporter.WriteOptions{BOMPrefix: bom})
}

func stdoutTable(which string, report dataprocessing.Report) (exporter.Table, bool) {
	switch which {
	case config.StdoutCounts:
		return exporter.QuoteCountTable(report.Quotes), true
	case config.StdoutSummary:
		return exporter.ModificationSummaryTable(report.Modifications), true
	case config.StdoutDetail:
		return exporter.ModificationDetailTable(report.Modifications), true
	default:
		return exporter.Table{}, false
	}
}

func artifacts(opts Options, report dataprocessing.Report) []artifact {
	var out []artifact
	if opts.CountsCSV != "" {
		out = append(out, artifact{opts.CountsCSV, exporter.QuoteCountTable(report.Quotes)})
	}
	if opts.ModsCSV != "" {
		out = append(out, artifact{opts.ModsCSV, exporter.ModificationDetailTable(report.Modifications)})
	}
	if opts.ModsSummaryCSV != "" {
		out = append(out, artifact{opts.ModsSummaryCSV, exporter.ModificationSummaryTable(report.Modifications)})
	}
	return out
}
