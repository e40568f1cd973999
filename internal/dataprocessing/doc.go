// Package dataprocessing turns a Blue Book workbook export into quote counts
// and labor modification summaries.
//
// # Architecture
//
// The package is organized into four parts:
//
// 1. Workbook: the excelize adapter behind the Workbook and CellSource interfaces
// 2. Parser: sheet selection, header lookup and row extraction (SheetReader)
// 3. Processor: technician clean-up and optional fill-down (RowNormalizer)
// 4. Aggregation: QuoteAggregator, ModificationAggregator and Infer
//
// # Usage
//
//	s := dataprocessing.NewSummarizer(logger, dataprocessing.ReadOptions{
//	    Sheet:   "ALL",
//	    Columns: aliases,
//	})
//	report, err := s.SummarizeFile(ctx, "BlueBook_Report.xlsx")
//
// # Data Flow
//
//	Workbook → SheetReader → RowNormalizer → QuoteAggregator
//	                                       → ModificationAggregator (Infer)
//
// Both aggregators are fed from one pass over the rows.
//
// # Error Handling
//
// A missing or unreadable workbook and an unknown sheet are input errors. A
// sheet without the technician or quote id column is a schema error. Both
// abort the read. Annotations without amounts are logged and yield an
// unknown direction.
package dataprocessing
