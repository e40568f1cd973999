package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Paths holds the report file locations derived from one input workbook.
type Paths struct {
	Workbook       string
	WorkbookDir    string
	CountsCSV      string
	ModsDetailCSV  string
	ModsSummaryCSV string
}

// PathsFor derives the default report locations for the given workbook.
// Reports sit next to the workbook and reuse its file stem.
func PathsFor(workbook string) *Paths {
	dir := filepath.Dir(workbook)
	base := filepath.Base(workbook)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	return &Paths{
		Workbook:       workbook,
		WorkbookDir:    dir,
		CountsCSV:      filepath.Join(dir, stem+CountsFileSuffix),
		ModsDetailCSV:  filepath.Join(dir, stem+ModsDetailFileSuffix),
		ModsSummaryCSV: filepath.Join(dir, stem+ModsSummaryFileSuffix),
	}
}

// LogPathResolution logs the derived paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.String("workbook", p.Workbook),
		slog.Group("default_reports",
			slog.String("counts_csv", p.CountsCSV),
			slog.String("mods_detail_csv", p.ModsDetailCSV),
			slog.String("mods_summary_csv", p.ModsSummaryCSV),
		))
}

// PickerStartDir returns the directory the interactive file picker opens in:
// ./data when it exists, otherwise the working directory.
func PickerStartDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dataDir := filepath.Join(wd, DefaultPickerDir)
	if info, err := os.Stat(dataDir); err == nil && info.IsDir() {
		return dataDir
	}
	return wd
}
