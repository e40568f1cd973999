// Package exporter renders Blue Book results as tables and writes them out.
//
// This package contains three main components:
//
// Table builders: QuoteCountTable, ModificationDetailTable and
// ModificationSummaryTable turn aggregation results into header and string
// rows, appending TOTAL rows where the report has them.
//
// CSVWriter: CSV writing to any io.Writer, or to a file with parent
// directories created, an optional UTF-8 BOM for Excel, and an atomic rename.
//
// Emitter: picks CSV or a lipgloss terminal table for streams and reports
// failures as output errors.
//
// Example usage:
//
//	emitter := exporter.NewEmitter(logger)
//	counts := exporter.QuoteCountTable(report.Quotes)
//	err := emitter.ToStream(os.Stdout, counts, exporter.FormatCSV)
//	err = emitter.ToFile("report_counts.csv", counts, exporter.WriteOptions{BOMPrefix: true})
package exporter
