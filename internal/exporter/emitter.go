package exporter

import (
	"fmt"
	"io"
	"log/slog"

	apperrors "bluebook/internal/errors"
)

// Output formats.
const (
	FormatCSV   = "csv"
	FormatTable = "table"
)

// Emitter sends report tables to a terminal stream or to files. Failures are
// returned as output errors naming the artifact.
type Emitter struct {
	writer *CSVWriter
	logger *slog.Logger
}

// NewEmitter creates an emitter. A nil logger falls back to slog.Default.
func NewEmitter(logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{writer: NewCSVWriter(logger), logger: logger}
}

// ToStream writes t to out in the given format. Streams never get a BOM.
func (e *Emitter) ToStream(out io.Writer, t Table, format string) error {
	var err error
	switch format {
	case FormatCSV, "":
		err = e.writer.Write(out, t, WriteOptions{})
	case FormatTable:
		err = RenderTable(out, t)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return apperrors.NewOutputError("failed to write "+t.Name+" table", err).
			WithContext("table", t.Name).WithContext("format", format)
	}
	return nil
}

// ToFile writes t as CSV to path.
func (e *Emitter) ToFile(path string, t Table, options WriteOptions) error {
	if err := e.writer.WriteFile(path, t, options); err != nil {
		return apperrors.NewOutputError("failed to write "+t.Name+" CSV", err).
			WithContext("table", t.Name).WithContext("path", path)
	}
	return nil
}
