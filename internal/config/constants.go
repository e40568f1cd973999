package config

// Application constants
const (
	// Application Info
	AppName    = "Blue Book Counter"
	BinaryName = "bluebook"

	// EnvPrefix namespaces every environment variable, e.g. BLUEBOOK_LOGGING_LEVEL.
	EnvPrefix = "BLUEBOOK"

	// Sheet selection
	AllSheets    = "ALL"
	DefaultSheet = AllSheets

	// Header detection
	DefaultHeaderScanRows = 10

	// Output file naming, relative to the input workbook
	CountsFileSuffix      = "_counts.csv"
	ModsDetailFileSuffix  = "_mods.csv"
	ModsSummaryFileSuffix = "_mods_summary.csv"

	// Table selectors for standard output
	StdoutCounts  = "counts"
	StdoutSummary = "summary"
	StdoutDetail  = "detail"
	StdoutNone    = "none"

	// Stdout formats
	FormatCSV   = "csv"
	FormatTable = "table"

	// Log Settings
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "json"
	DefaultLogOutput   = "console"
	DefaultLogFilePath = "logs/bluebook.log"

	// Tracing exporters
	TraceExporterStdout = "stdout"
	TraceExporterNone   = "none"

	// Picker
	DefaultPickerDir = "data"
)

// Default header aliases. Matching ignores case, spaces and punctuation.
var (
	DefaultTechnicianHeaders = []string{"technician", "tech", "tech name", "created by", "created by (at)", "advisor"}
	DefaultQuoteHeaders      = []string{"quote id", "quote", "quote #", "quote number", "quote no", "estimate #"}
	DefaultLaborHeaders      = []string{"labor", "labor amount", "labor $", "labor price", "labor total"}
)

// Config file locations searched when no --config path is given.
var configFileLocations = []string{
	"bluebook.yaml",
	"configs/bluebook.yaml",
}
