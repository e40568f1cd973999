// Package config provides centralized configuration management for the
// Blue Book counter. It loads configuration from multiple sources, validates
// it, and derives report file locations from the input workbook.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), including a .env file
//	2. A YAML configuration file (--config, bluebook.yaml or configs/bluebook.yaml)
//	3. Default values (lowest priority)
//
// Command line flags are applied on top by the caller.
//
// # Environment Variables
//
// All environment variables follow the pattern BLUEBOOK_* for namespacing:
//
//	BLUEBOOK_LOGGING_LEVEL=debug
//	BLUEBOOK_REPORT_SHEET=ALL
//	BLUEBOOK_REPORT_FILL_DOWN=true
//	BLUEBOOK_COLUMNS_QUOTE_ID="quote id,estimate #"
//	BLUEBOOK_TRACING_EXPORTER=stdout
//	BLUEBOOK_METRICS_TEXTFILE_PATH=/var/lib/node_exporter/bluebook.prom
//
// # Paths
//
// PathsFor derives default report files next to the workbook:
//
//	paths := config.PathsFor("data/BlueBook_Report_10_01_2025.xlsx")
//	paths.CountsCSV // data/BlueBook_Report_10_01_2025_counts.csv
package config
