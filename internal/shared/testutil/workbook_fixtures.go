package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetFixture describes one worksheet of a generated workbook. Rows start at
// A1; Comments maps cell references such as "C2" to comment text.
type SheetFixture struct {
	Name     string
	Rows     [][]any
	Comments map[string]string
}

// BlueBookHeader is the header row used by most fixtures.
var BlueBookHeader = []any{"Quote ID", "Created By (At)", "Labor"}

// WriteWorkbook saves the sheets as an .xlsx file in a temp directory and
// returns its path.
func WriteWorkbook(t *testing.T, name string, sheets ...SheetFixture) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("create sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			values := row
			if err := f.SetSheetRow(sheet.Name, cell, &values); err != nil {
				t.Fatalf("write row %d of %q: %v", r+1, sheet.Name, err)
			}
		}

		for ref, text := range sheet.Comments {
			if err := f.AddComment(sheet.Name, excelize.Comment{Cell: ref, Author: "Advisor", Text: text}); err != nil {
				t.Fatalf("add comment %s: %v", ref, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// StandardBlueBook returns a single ALL sheet covering the common cases:
// repeated quotes, a blank technician, and annotated labor lines.
func StandardBlueBook() SheetFixture {
	return SheetFixture{
		Name: "ALL",
		Rows: [][]any{
			{"Blue Book Report"},
			BlueBookHeader,
			{"Q1", "ALICE (9:15 AM)", 179},
			{"Q1", "ALICE (9:15 AM)", 40},
			{"Q2", "ALICE (10:02 AM)", 150},
			{"Q1", "BOB (1:30 PM)", 200},
			{"Q3", "", 95},
		},
		Comments: map[string]string{
			"C3": "changed from $149 to $179",
			"C5": "adjusted",
			"C6": "was $180.00 now $160.00",
		},
	}
}
