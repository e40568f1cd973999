package exporter

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bluebook/internal/errors"
	"bluebook/internal/shared/testutil"
)

var sampleTable = Table{
	Name:   TableCounts,
	Header: []string{"Technician", "Quotes"},
	Rows: [][]string{
		{"Smith, Ann", "2"},
		{"B \"Bo\" Lee", "1"},
		{"TOTAL", "3"},
	},
}

func TestCSVWriter_Write(t *testing.T) {
	tests := []struct {
		name    string
		options WriteOptions
		wantBOM bool
	}{
		{"without BOM", WriteOptions{}, false},
		{"with BOM", WriteOptions{BOMPrefix: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewCSVWriter(nil).Write(&buf, sampleTable, tt.options))

			data := buf.Bytes()
			assert.Equal(t, tt.wantBOM, bytes.HasPrefix(data, utf8BOM))
			data = bytes.TrimPrefix(data, utf8BOM)

			records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
			require.NoError(t, err)
			assert.Equal(t, append([][]string{sampleTable.Header}, sampleTable.Rows...), records)
		})
	}
}

func TestCSVWriter_WriteQuotesFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(nil).Write(&buf, sampleTable, WriteOptions{}))
	assert.Equal(t, "Technician,Quotes\n\"Smith, Ann\",2\n\"B \"\"Bo\"\" Lee\",1\nTOTAL,3\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestCSVWriter_WriteError(t *testing.T) {
	err := NewCSVWriter(nil).Write(failingWriter{}, sampleTable, WriteOptions{BOMPrefix: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestCSVWriter_WriteFile(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	path := filepath.Join(t.TempDir(), "nested", "reports", "out_counts.csv")

	w := NewCSVWriter(logger)
	require.NoError(t, w.WriteFile(path, sampleTable, WriteOptions{BOMPrefix: true}))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, utf8BOM))
	assert.True(t, strings.HasSuffix(string(content), "TOTAL,3\n"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")

	testutil.AssertLogAttr(t, logs, "component", "csv_writer")
	testutil.AssertLogAttr(t, logs, "table", TableCounts)

	// Overwrite replaces the previous report.
	small := Table{Name: TableCounts, Header: sampleTable.Header, Rows: [][]string{{"TOTAL", "0"}}}
	require.NoError(t, w.WriteFile(path, small, WriteOptions{}))
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Technician,Quotes\nTOTAL,0\n", string(content))
}

func TestCSVWriter_WriteFileIntoFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewCSVWriter(nil).WriteFile(filepath.Join(blocker, "out.csv"), sampleTable, WriteOptions{})
	assert.Error(t, err)
}

func TestEmitter_ToStream(t *testing.T) {
	e := NewEmitter(nil)

	var csvBuf bytes.Buffer
	require.NoError(t, e.ToStream(&csvBuf, sampleTable, FormatCSV))
	assert.False(t, bytes.HasPrefix(csvBuf.Bytes(), utf8BOM))
	assert.True(t, strings.HasPrefix(csvBuf.String(), "Technician,Quotes\n"))

	var tableBuf bytes.Buffer
	require.NoError(t, e.ToStream(&tableBuf, sampleTable, FormatTable))
	out := tableBuf.String()
	for _, want := range []string{"Technician", "Quotes", "Smith, Ann", "TOTAL", "3"} {
		assert.Contains(t, out, want)
	}

	err := e.ToStream(&bytes.Buffer{}, sampleTable, "xml")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeOutput))
}

func TestEmitter_ToFileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	err := NewEmitter(nil).ToFile(filepath.Join(blocker, "out.csv"), sampleTable, WriteOptions{})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeOutput))
	assert.Equal(t, apperrors.ExitOutputFailed, apperrors.ExitCode(err))

	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, TableCounts, appErr.Context["table"])
}
