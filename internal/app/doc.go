// Package app runs one Blue Book report: it validates the workbook, reads it
// once through the dataprocessing summarizer and hands the aggregates to the
// exporter.
//
// # Run Flow
//
//	1. Validate the run options and the workbook path
//	2. Read every selected sheet and aggregate quotes and modifications
//	3. Print the requested table to stdout
//	4. Write each requested CSV independently
//	5. Optionally open the first file written
//	6. Export run metrics when a textfile path is set
//
// Steps 1 and 2 are all-or-nothing: an input or schema error returns before
// any output exists. A failed output does not stop the others.
//
// # Usage
//
//	opts := app.OptionsFromConfig(cfg, "data/bluebook.xlsx")
//	res, err := app.NewRunner(logger, tracer, os.Stdout).Run(ctx, opts)
//	os.Exit(errors.ExitCode(err))
package app
