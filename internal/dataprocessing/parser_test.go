package dataprocessing

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "bluebook/internal/errors"
	"bluebook/internal/shared/testutil"
	"bluebook/pkg/contracts/domain"
)

var testAliases = ColumnAliases{
	Technician: []string{"technician", "tech", "created by", "created by (at)"},
	QuoteID:    []string{"quote id", "quote", "quote #"},
	Labor:      []string{"labor", "labor amount"},
}

// fakeSheet is an in-memory CellSource.
type fakeSheet struct {
	name     string
	rows     [][]string
	comments map[[2]int]string
}

func (s fakeSheet) Name() string { return s.name }
func (s fakeSheet) MaxRow() int  { return len(s.rows) }
func (s fakeSheet) Row(row int) []string {
	if row < 1 || row > len(s.rows) {
		return nil
	}
	return s.rows[row-1]
}
func (s fakeSheet) Value(row, col int) string {
	cells := s.Row(row)
	if col < 1 || col > len(cells) {
		return ""
	}
	return cells[col-1]
}
func (s fakeSheet) Annotation(row, col int) string { return s.comments[[2]int{row, col}] }

// fakeWorkbook is an in-memory Workbook.
type fakeWorkbook struct {
	sheets []fakeSheet
	closed bool
}

func (w *fakeWorkbook) SheetNames() []string {
	names := make([]string, len(w.sheets))
	for i, s := range w.sheets {
		names[i] = s.name
	}
	return names
}

func (w *fakeWorkbook) Sheet(name string) (CellSource, error) {
	for _, s := range w.sheets {
		if s.name == name {
			return s, nil
		}
	}
	return nil, errors.New("no such sheet")
}

func (w *fakeWorkbook) Close() error {
	w.closed = true
	return nil
}

func collect(t *testing.T, wb Workbook, opts ReadOptions) ([]domain.Row, ReadStats, error) {
	t.Helper()
	var rows []domain.Row
	stats, err := NewSheetReader(opts, nil).Read(context.Background(), wb, func(r domain.Row) error {
		rows = append(rows, r)
		return nil
	})
	return rows, stats, err
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Quote #":         "quote",
		"Created By (At)": "createdbyat",
		"  LABOR $ ":      "labor",
		"quote_no":        "quoteno",
		"":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeHeader(in), in)
	}
}

func TestFindHeader(t *testing.T) {
	tests := []struct {
		name      string
		rows      [][]string
		scanRows  int
		want      HeaderMap
		wantErr   bool
		wantAbout string
	}{
		{
			name: "header on first row",
			rows: [][]string{{"Technician", "Quote ID", "Labor"}},
			want: HeaderMap{Row: 1, Technician: 1, QuoteID: 2, Labor: 3},
		},
		{
			name: "header below a title",
			rows: [][]string{{"Blue Book Report"}, {}, {"Quote #", "Created By (At)", "Notes", "Labor Amount"}},
			want: HeaderMap{Row: 3, Technician: 2, QuoteID: 1, Labor: 4},
		},
		{
			name: "exact match wins over substring",
			rows: [][]string{{"Tech Notes", "Quote", "Tech"}},
			want: HeaderMap{Row: 1, Technician: 3, QuoteID: 2},
		},
		{
			name: "labor is optional",
			rows: [][]string{{"Technician", "Quote ID"}},
			want: HeaderMap{Row: 1, Technician: 1, QuoteID: 2},
		},
		{
			name:      "missing quote column",
			rows:      [][]string{{"Technician", "Labor"}},
			wantErr:   true,
			wantAbout: "quote id",
		},
		{
			name:      "missing technician column",
			rows:      [][]string{{"Quote ID", "Labor"}},
			wantErr:   true,
			wantAbout: "technician",
		},
		{
			name:      "header beyond scan window",
			rows:      [][]string{{"title"}, {"more"}, {"Technician", "Quote ID"}},
			scanRows:  2,
			wantErr:   true,
			wantAbout: "technician",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindHeader(fakeSheet{name: "ALL", rows: tt.rows}, testAliases, tt.scanRows)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
				assert.ErrorIs(t, err, apperrors.ErrMissingColumn)
				assert.Contains(t, err.Error(), tt.wantAbout)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Row, got.Row)
			assert.Equal(t, tt.want.Technician, got.Technician)
			assert.Equal(t, tt.want.QuoteID, got.QuoteID)
			assert.Equal(t, tt.want.Labor, got.Labor)
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Amount
	}{
		{"149", domain.NewAmount(149)},
		{"149.5", domain.NewAmount(149.5)},
		{"$1,234.00", domain.NewAmount(1234)},
		{"(12.50)", domain.NewAmount(-12.5)},
		{"", domain.Amount{}},
		{"n/a", domain.Amount{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestSelectSheets(t *testing.T) {
	tests := []struct {
		name     string
		names    []string
		selector string
		want     []string
		wantErr  bool
	}{
		{"empty selects all", []string{"Jan", "Feb"}, "", []string{"Jan", "Feb"}, false},
		{"ALL selects all", []string{"Jan", "Feb"}, "all", []string{"Jan", "Feb"}, false},
		{"sheet named ALL wins", []string{"ALL", "Jan"}, "ALL", []string{"ALL"}, false},
		{"named sheet", []string{"Jan", "Feb"}, "feb", []string{"Feb"}, false},
		{"unknown sheet", []string{"Jan"}, "Mar", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectSheets(tt.names, tt.selector)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
				assert.ErrorIs(t, err, apperrors.ErrSheetNotFound)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSheetReader_Read(t *testing.T) {
	wb := &fakeWorkbook{sheets: []fakeSheet{
		{
			name: "Jan",
			rows: [][]string{
				{"Technician", "Quote ID", "Labor"},
				{"  Alice   Smith (9:05 am)", "Q1", "149"},
				{"", "", ""},
				{"Technician", "Quote ID", "Labor"},
				{"", "Q2", "$1,000.00"},
			},
			comments: map[[2]int]string{{2, 3}: "from $120 to $149"},
		},
		{name: "Empty"},
		{
			name: "Feb",
			rows: [][]string{
				{"Tech", "Quote"},
				{"Bob", "Q9"},
			},
		},
	}}

	rows, stats, err := collect(t, wb, ReadOptions{Columns: testAliases})
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, domain.Row{
		Sheet:           "Jan",
		RowNumber:       2,
		Technician:      "Alice Smith",
		QuoteID:         "Q1",
		LaborText:       "149",
		LaborValue:      domain.NewAmount(149),
		LaborAnnotation: "from $120 to $149",
	}, rows[0])
	assert.Equal(t, "", rows[1].Technician, "blank technician is kept without fill-down")
	assert.Equal(t, domain.NewAmount(1000), rows[1].LaborValue)
	assert.Equal(t, 5, rows[1].RowNumber)
	assert.Equal(t, "Feb", rows[2].Sheet)
	assert.Equal(t, "Bob", rows[2].Technician)

	assert.Equal(t, ReadStats{Sheets: 2, SkippedSheets: 1, Rows: 3, SkippedRows: 1, RepeatedHeader: 1}, stats)
}

func TestSheetReader_FillDown(t *testing.T) {
	wb := &fakeWorkbook{sheets: []fakeSheet{
		{name: "A", rows: [][]string{{"Technician", "Quote ID"}, {"Alice", "Q1"}, {"", "Q1"}}},
		{name: "B", rows: [][]string{{"Technician", "Quote ID"}, {"", "Q5"}}},
	}}

	rows, stats, err := collect(t, wb, ReadOptions{Columns: testAliases, FillDown: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Alice", rows[1].Technician)
	assert.Equal(t, "", rows[2].Technician, "fill-down does not cross sheets")
	assert.Equal(t, 1, stats.FilledDown)
}

func TestSheetReader_MissingColumnAborts(t *testing.T) {
	wb := &fakeWorkbook{sheets: []fakeSheet{
		{name: "Good", rows: [][]string{{"Technician", "Quote ID"}, {"Alice", "Q1"}}},
		{name: "Bad", rows: [][]string{{"Technician", "Labor"}, {"Bob", "10"}}},
	}}

	_, _, err := collect(t, wb, ReadOptions{Columns: testAliases})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeSchema))
}

func TestSheetReader_CallbackErrorStops(t *testing.T) {
	wb := &fakeWorkbook{sheets: []fakeSheet{
		{name: "A", rows: [][]string{{"Technician", "Quote ID"}, {"Alice", "Q1"}, {"Bob", "Q2"}}},
	}}
	stop := errors.New("stop")

	calls := 0
	_, err := NewSheetReader(ReadOptions{Columns: testAliases}, nil).Read(context.Background(), wb, func(domain.Row) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}

func TestSheetReader_Cancelled(t *testing.T) {
	wb := &fakeWorkbook{sheets: []fakeSheet{
		{name: "A", rows: [][]string{{"Technician", "Quote ID"}, {"Alice", "Q1"}}},
	}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSheetReader(ReadOptions{Columns: testAliases}, nil).Read(ctx, wb, func(domain.Row) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadFile_Workbook(t *testing.T) {
	path := testutil.WriteWorkbook(t, "bluebook.xlsx", testutil.StandardBlueBook())

	var rows []domain.Row
	stats, err := ReadFile(context.Background(), path, ReadOptions{Sheet: "ALL", Columns: testAliases}, nil, func(r domain.Row) error {
		rows = append(rows, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Rows)
	require.Len(t, rows, 5)

	assert.Equal(t, "ALICE", rows[0].Technician)
	assert.Equal(t, "Q1", rows[0].QuoteID)
	assert.Equal(t, domain.NewAmount(179), rows[0].LaborValue)
	assert.Equal(t, "changed from $149 to $179", rows[0].LaborAnnotation)
	assert.Equal(t, 3, rows[0].RowNumber)
	assert.Empty(t, rows[1].LaborAnnotation)
	assert.Equal(t, "", rows[4].Technician)
}

func TestReadFile_InputErrors(t *testing.T) {
	dir := t.TempDir()
	notWorkbook := filepath.Join(dir, "notes.xlsx")
	require.NoError(t, os.WriteFile(notWorkbook, []byte("plain text"), 0o644))

	tests := []struct {
		name     string
		path     string
		sentinel error
	}{
		{"missing file", filepath.Join(dir, "missing.xlsx"), apperrors.ErrFileNotFound},
		{"not a workbook", notWorkbook, apperrors.ErrUnreadableWorkbook},
		{"directory", dir, apperrors.ErrUnreadableWorkbook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFile(context.Background(), tt.path, ReadOptions{Columns: testAliases}, nil, func(domain.Row) error { return nil })
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}
}

func TestCommentText(t *testing.T) {
	tests := []struct {
		name    string
		comment excelize.Comment
		want    string
	}{
		{"plain text", excelize.Comment{Text: " from $1 to $2 "}, "from $1 to $2"},
		{
			name: "author run stripped",
			comment: excelize.Comment{
				Author: "Advisor",
				Paragraph: []excelize.RichTextRun{
					{Text: "Advisor:", Font: &excelize.Font{Bold: true}},
					{Text: "\nwas $150.00"},
				},
			},
			want: "was $150.00",
		},
		{"other prefix kept", excelize.Comment{Author: "Advisor", Text: "Customer: wants $80"}, "Customer: wants $80"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commentText(tt.comment))
		})
	}
}

func TestExcelWorkbook_RichTextComment(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Technician", "Quote ID", "Labor"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Alice", "Q1", 120}))
	require.NoError(t, f.AddComment("Sheet1", excelize.Comment{
		Cell:   "C2",
		Author: "Advisor",
		Paragraph: []excelize.RichTextRun{
			{Text: "Advisor: ", Font: &excelize.Font{Bold: true}},
			{Text: "lowered from $150.00"},
		},
	}))
	path := filepath.Join(t.TempDir(), "rich.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := OpenWorkbook(path)
	require.NoError(t, err)
	defer wb.Close()

	src, err := wb.Sheet("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, "lowered from $150.00", src.Annotation(2, 3))
	assert.Equal(t, "", src.Annotation(2, 2))
	assert.Equal(t, "120", src.Value(2, 3))
}
