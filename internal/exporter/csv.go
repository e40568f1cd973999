package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance. A nil logger falls back to
// slog.Default.
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger.With(slog.String("component", "csv_writer"))}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// Write renders t as CSV to out.
func (w *CSVWriter) Write(out io.Writer, t Table, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := out.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(out)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}
	for i, record := range t.Rows {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes t to filePath, creating parent directories. The file is
// written next to its destination and renamed into place, so a failed write
// never leaves a truncated report behind.
func (w *CSVWriter) WriteFile(filePath string, t Table, options WriteOptions) (err error) {
	w.logger.Info("Writing CSV file",
		slog.String("file_path", filePath),
		slog.String("table", t.Name),
		slog.Int("record_count", len(t.Rows)))

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = w.Write(tmp, t, options); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	return nil
}
