package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	apperrors "bluebook/internal/errors"
	"bluebook/pkg/contracts/domain"
)

// DefaultHeaderScanRows is how many leading rows are searched for the header row.
const DefaultHeaderScanRows = 10

// ColumnAliases lists the header texts accepted for each logical column.
type ColumnAliases struct {
	Technician []string
	QuoteID    []string
	Labor      []string
}

// ReadOptions controls how a workbook is turned into rows.
type ReadOptions struct {
	Sheet          string
	Columns        ColumnAliases
	HeaderScanRows int
	FillDown       bool
}

// ReadStats describes one read pass.
type ReadStats struct {
	Sheets         int
	SkippedSheets  int
	Rows           int
	SkippedRows    int
	RepeatedHeader int
	FilledDown     int
}

// HeaderMap locates the logical columns of a sheet. Columns are 1-based; a
// zero Labor means the sheet has no labor column.
type HeaderMap struct {
	Row        int
	Technician int
	QuoteID    int
	Labor      int

	technicianText string
	quoteText      string
}

// FindHeader scans the first scanRows rows of src for a row holding both the
// technician and quote id columns.
func FindHeader(src CellSource, aliases ColumnAliases, scanRows int) (HeaderMap, error) {
	if scanRows <= 0 {
		scanRows = DefaultHeaderScanRows
	}
	limit := scanRows
	if src.MaxRow() < limit {
		limit = src.MaxRow()
	}

	for r := 1; r <= limit; r++ {
		cells := src.Row(r)
		if len(cells) == 0 {
			continue
		}
		normalized := make([]string, len(cells))
		for i, c := range cells {
			normalized[i] = normalizeHeader(c)
		}

		claimed := make(map[int]bool)
		tech := matchColumn(normalized, aliases.Technician, claimed)
		if tech == 0 {
			continue
		}
		claimed[tech] = true
		quote := matchColumn(normalized, aliases.QuoteID, claimed)
		if quote == 0 {
			continue
		}
		claimed[quote] = true

		return HeaderMap{
			Row:            r,
			Technician:     tech,
			QuoteID:        quote,
			Labor:          matchColumn(normalized, aliases.Labor, claimed),
			technicianText: normalized[tech-1],
			quoteText:      normalized[quote-1],
		}, nil
	}

	missing := "technician"
	if rowsContain(src, limit, aliases.Technician) {
		missing = "quote id"
	}
	return HeaderMap{}, apperrors.NewSchemaError(
		fmt.Sprintf("sheet %q has no %s column in its first %d rows", src.Name(), missing, scanRows),
		apperrors.ErrMissingColumn,
	).WithContext("sheet", src.Name()).WithContext("column", missing)
}

// matchColumn returns the 1-based column whose header equals one of the
// aliases, else the first whose header contains one. Claimed columns are skipped.
func matchColumn(headers []string, aliases []string, claimed map[int]bool) int {
	normAliases := make([]string, 0, len(aliases))
	for _, a := range aliases {
		if n := normalizeHeader(a); n != "" {
			normAliases = append(normAliases, n)
		}
	}

	for i, h := range headers {
		if h == "" || claimed[i+1] {
			continue
		}
		for _, a := range normAliases {
			if h == a {
				return i + 1
			}
		}
	}
	for i, h := range headers {
		if h == "" || claimed[i+1] {
			continue
		}
		for _, a := range normAliases {
			if strings.Contains(h, a) {
				return i + 1
			}
		}
	}
	return 0
}

func rowsContain(src CellSource, limit int, aliases []string) bool {
	for r := 1; r <= limit; r++ {
		cells := src.Row(r)
		normalized := make([]string, len(cells))
		for i, c := range cells {
			normalized[i] = normalizeHeader(c)
		}
		if matchColumn(normalized, aliases, nil) != 0 {
			return true
		}
	}
	return false
}

// normalizeHeader lowercases s and keeps letters and digits only, so
// "Quote #" and "quote_no" compare as "quote" and "quoteno".
func normalizeHeader(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseAmount reads a numeric cell, tolerating currency symbols and
// thousands separators. Accounting negatives "(12.50)" are supported.
func ParseAmount(text string) domain.Amount {
	s := strings.TrimSpace(text)
	if s == "" {
		return domain.Amount{}
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer("$", "", "£", "", "€", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return domain.Amount{}
	}
	if negative {
		v = -v
	}
	return domain.NewAmount(v)
}

// SheetReader turns selected worksheets into domain rows.
type SheetReader struct {
	opts   ReadOptions
	logger *slog.Logger
}

// NewSheetReader creates a reader. A nil logger falls back to slog.Default.
func NewSheetReader(opts ReadOptions, logger *slog.Logger) *SheetReader {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.HeaderScanRows <= 0 {
		opts.HeaderScanRows = DefaultHeaderScanRows
	}
	return &SheetReader{opts: opts, logger: logger.With(slog.String("component", "sheet_reader"))}
}

// Read walks the selected sheets of wb in sheet order, then row order, and
// calls fn for every data row. It stops at the first error from fn.
func (r *SheetReader) Read(ctx context.Context, wb Workbook, fn func(domain.Row) error) (ReadStats, error) {
	var stats ReadStats

	names, err := SelectSheets(wb.SheetNames(), r.opts.Sheet)
	if err != nil {
		return stats, err
	}

	for _, name := range names {
		src, err := wb.Sheet(name)
		if err != nil {
			return stats, apperrors.NewInputError("cannot read sheet",
				fmt.Errorf("%w: %v", apperrors.ErrUnreadableWorkbook, err)).WithContext("sheet", name)
		}
		if src.MaxRow() == 0 {
			stats.SkippedSheets++
			r.logger.WarnContext(ctx, "Skipping empty sheet", slog.String("sheet", name))
			continue
		}

		header, err := FindHeader(src, r.opts.Columns, r.opts.HeaderScanRows)
		if err != nil {
			return stats, err
		}
		stats.Sheets++
		r.logger.DebugContext(ctx, "Header row found",
			slog.String("sheet", name),
			slog.Int("row", header.Row),
			slog.Int("technician_col", header.Technician),
			slog.Int("quote_col", header.QuoteID),
			slog.Int("labor_col", header.Labor))

		if err := r.readSheet(ctx, src, header, &stats, fn); err != nil {
			return stats, err
		}
	}

	r.logger.InfoContext(ctx, "Workbook read",
		slog.Int("sheets", stats.Sheets),
		slog.Int("skipped_sheets", stats.SkippedSheets),
		slog.Int("rows", stats.Rows),
		slog.Int("filled_down", stats.FilledDown))
	return stats, nil
}

func (r *SheetReader) readSheet(ctx context.Context, src CellSource, header HeaderMap, stats *ReadStats, fn func(domain.Row) error) error {
	normalizer := NewRowNormalizer(r.opts.FillDown)
	defer func() { stats.FilledDown += normalizer.Filled() }()

	for n := header.Row + 1; n <= src.MaxRow(); n++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		tech := src.Value(n, header.Technician)
		quote := src.Value(n, header.QuoteID)

		if normalizeHeader(tech) == header.technicianText && normalizeHeader(quote) == header.quoteText {
			stats.RepeatedHeader++
			continue
		}

		row := domain.Row{
			Sheet:      src.Name(),
			RowNumber:  n,
			Technician: tech,
			QuoteID:    strings.TrimSpace(quote),
		}
		if header.Labor > 0 {
			row.LaborText = strings.TrimSpace(src.Value(n, header.Labor))
			row.LaborValue = ParseAmount(row.LaborText)
			row.LaborAnnotation = src.Annotation(n, header.Labor)
		}

		if isBlankRow(src.Row(n)) && row.LaborAnnotation == "" {
			stats.SkippedRows++
			continue
		}

		stats.Rows++
		if err := fn(normalizer.Normalize(row)); err != nil {
			return err
		}
	}
	return nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadFile opens the workbook at path, streams its rows to fn and closes the
// workbook on every exit path.
func ReadFile(ctx context.Context, path string, opts ReadOptions, logger *slog.Logger, fn func(domain.Row) error) (stats ReadStats, err error) {
	wb, err := OpenWorkbook(path)
	if err != nil {
		return stats, err
	}
	defer func() {
		if cerr := wb.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close workbook: %w", cerr)
		}
	}()

	return NewSheetReader(opts, logger).Read(ctx, wb, fn)
}
