// Package shared holds helpers used across the bluebook packages that belong
// to no single layer.
//
// # Test Utilities
//
// The testutil subpackage provides:
//
//   - BufferedSlogHandler, a slog.Handler that captures records for assertions
//   - WriteWorkbook, which saves generated Blue Book workbooks (cell values
//     and cell comments) into a test's temp directory
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    path := testutil.WriteWorkbook(t, "report.xlsx", testutil.StandardBlueBook())
//	    logger, logs := testutil.NewTestLogger(t)
//	    ...
//	}
package shared
