package exporter

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"bluebook/pkg/contracts/domain"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	totalStyle  = cellStyle.Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#444444"))
)

// RenderTable draws t as a bordered terminal table. Numeric columns are right
// aligned and a trailing TOTAL row is bold.
func RenderTable(out io.Writer, t Table) error {
	// Row indexes passed to StyleFunc are offset from table.HeaderRow.
	lastRow := table.HeaderRow + len(t.Rows)
	hasTotal := len(t.Rows) > 0 && len(t.Rows[len(t.Rows)-1]) > 0 && t.Rows[len(t.Rows)-1][0] == domain.TotalLabel

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case hasTotal && row == lastRow:
				style = totalStyle
			default:
				style = cellStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	if _, err := fmt.Fprintln(out, tbl.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}
