// Package files provides the file system helpers around a report run.
//
// This package contains two main components:
//
// Discovery: finds workbooks in a directory, skipping Excel lock files, and
// picks the most recently modified one.
//
// Opener: launches the operating system's default application for a written
// report (open on macOS, rundll32 on Windows, xdg-open elsewhere).
//
// Example usage:
//
//	latest, ok, err := files.NewDiscovery(".").LatestWorkbook("data")
//
//	if err := files.NewOpener(logger).Open("report_counts.csv"); err != nil {
//	    // not fatal
//	}
package files
