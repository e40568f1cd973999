package dataprocessing

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "bluebook/internal/errors"
)

// Workbook is the read-only view of a spreadsheet the reader needs.
type Workbook interface {
	SheetNames() []string
	Sheet(name string) (CellSource, error)
	Close() error
}

// CellSource exposes one worksheet. Rows and columns are 1-based.
type CellSource interface {
	Name() string
	MaxRow() int
	Row(row int) []string
	Value(row, col int) string
	Annotation(row, col int) string
}

// ExcelWorkbook adapts an excelize file to Workbook.
type ExcelWorkbook struct {
	file *excelize.File
	path string
}

// OpenWorkbook opens the workbook at path. A missing path and a file that is
// not a spreadsheet container are both reported as input errors.
func OpenWorkbook(path string) (*ExcelWorkbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewInputError("workbook does not exist", apperrors.ErrFileNotFound).
				WithContext("path", path)
		}
		return nil, apperrors.NewInputError("cannot access workbook", err).WithContext("path", path)
	}
	if info.IsDir() {
		return nil, apperrors.NewInputError("workbook path is a directory", apperrors.ErrUnreadableWorkbook).
			WithContext("path", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewInputError("cannot open workbook",
			fmt.Errorf("%w: %v", apperrors.ErrUnreadableWorkbook, err)).WithContext("path", path)
	}
	return &ExcelWorkbook{file: f, path: path}, nil
}

// Path returns the file the workbook was opened from.
func (w *ExcelWorkbook) Path() string { return w.path }

// SheetNames lists the sheets in workbook order.
func (w *ExcelWorkbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// Sheet loads the raw cell values and comments of one sheet.
func (w *ExcelWorkbook) Sheet(name string) (CellSource, error) {
	rows, err := w.file.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", name, err)
	}
	comments, err := w.file.GetComments(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read comments of sheet %q: %w", name, err)
	}

	sheet := &excelSheet{
		name:     name,
		rows:     rows,
		comments: make(map[string]string, len(comments)),
		maxRow:   len(rows),
	}
	for _, c := range comments {
		ref := strings.ToUpper(strings.ReplaceAll(c.Cell, "$", ""))
		sheet.comments[ref] = commentText(c)
		if _, row, err := excelize.CellNameToCoordinates(ref); err == nil && row > sheet.maxRow {
			sheet.maxRow = row
		}
	}
	return sheet, nil
}

// Close releases the underlying file.
func (w *ExcelWorkbook) Close() error {
	return w.file.Close()
}

type excelSheet struct {
	name     string
	rows     [][]string
	comments map[string]string
	maxRow   int
}

func (s *excelSheet) Name() string { return s.name }

func (s *excelSheet) MaxRow() int { return s.maxRow }

func (s *excelSheet) Row(row int) []string {
	if row < 1 || row > len(s.rows) {
		return nil
	}
	return s.rows[row-1]
}

func (s *excelSheet) Value(row, col int) string {
	cells := s.Row(row)
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}

func (s *excelSheet) Annotation(row, col int) string {
	if len(s.comments) == 0 || col < 1 || row < 1 {
		return ""
	}
	ref, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return s.comments[ref]
}

// commentText flattens a cell comment to plain text. Spreadsheet apps prefix
// the body with an "Author:" run; that prefix is dropped.
func commentText(c excelize.Comment) string {
	var runs strings.Builder
	for _, run := range c.Paragraph {
		runs.WriteString(run.Text)
	}

	// Some writers repeat the runs in Text; only append runs Text lacks.
	text := c.Text
	if r := runs.String(); r != "" && !strings.Contains(text, r) {
		text += r
	}
	text = strings.TrimSpace(text)

	if c.Author != "" {
		prefix := c.Author + ":"
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}
	return text
}

// SelectSheets resolves a sheet selector against the workbook's sheet names.
// "" and ALL select every sheet, unless a sheet is literally named ALL, in
// which case that sheet alone is the combined export. Other selectors must
// name an existing sheet, compared case-insensitively.
func SelectSheets(names []string, selector string) ([]string, error) {
	selector = strings.TrimSpace(selector)

	if selector == "" || strings.EqualFold(selector, allSheetsSelector) {
		for _, name := range names {
			if strings.EqualFold(strings.TrimSpace(name), allSheetsSelector) {
				return []string{name}, nil
			}
		}
		out := make([]string, len(names))
		copy(out, names)
		return out, nil
	}

	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), selector) {
			return []string{name}, nil
		}
	}

	available := make([]string, len(names))
	copy(available, names)
	sort.Strings(available)
	return nil, apperrors.NewInputError(fmt.Sprintf("sheet %q not found", selector), apperrors.ErrSheetNotFound).
		WithContext("available", strings.Join(available, ", "))
}

const allSheetsSelector = "ALL"
