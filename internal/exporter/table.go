package exporter

import (
	"bluebook/pkg/contracts/domain"
)

// Table is a rendered report: a header and string rows.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Report table names.
const (
	TableCounts  = "counts"
	TableSummary = "summary"
	TableDetail  = "detail"
)

var (
	countsHeader  = []string{"Technician", "Quotes"}
	detailHeader  = []string{"Technician", "QuoteId", "LaborValue", "Direction", "FromAmount", "ToAmount"}
	summaryHeader = []string{"Technician", "Up", "Down", "Even", "Unknown"}
)

// QuoteCountTable lists quotes per technician followed by a TOTAL row.
func QuoteCountTable(q domain.QuoteCounts) Table {
	rows := make([][]string, 0, len(q.Technicians)+1)
	for _, tc := range q.Technicians {
		rows = append(rows, []string{tc.Technician, formatInt(tc.Count)})
	}
	rows = append(rows, []string{domain.TotalLabel, formatInt(q.Total())})
	return Table{Name: TableCounts, Header: countsHeader, Rows: rows}
}

// ModificationDetailTable lists every modified row in source order.
func ModificationDetailTable(m domain.Modifications) Table {
	rows := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		labor := formatAmount(r.LaborValue)
		if labor == "" {
			labor = r.LaborText
		}
		rows = append(rows, []string{
			r.Technician,
			r.QuoteID,
			labor,
			string(r.Inference.Direction),
			formatAmount(r.Inference.From),
			formatAmount(r.Inference.To),
		})
	}
	return Table{Name: TableDetail, Header: detailHeader, Rows: rows}
}

// ModificationSummaryTable lists direction counts per technician followed by
// a TOTAL row.
func ModificationSummaryTable(m domain.Modifications) Table {
	rows := make([][]string, 0, len(m.Technicians)+1)
	for _, ts := range m.Technicians {
		rows = append(rows, countsRow(ts.Technician, ts.DirectionCounts))
	}
	rows = append(rows, countsRow(domain.TotalLabel, m.Total()))
	return Table{Name: TableSummary, Header: summaryHeader, Rows: rows}
}

func countsRow(label string, c domain.DirectionCounts) []string {
	return []string{label, formatInt(c.Up), formatInt(c.Down), formatInt(c.Even), formatInt(c.Unknown)}
}
