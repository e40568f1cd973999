package validation

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "bluebook/internal/errors"
	"bluebook/internal/shared/testutil"
)

func TestFileValidator_ValidateWorkbook(t *testing.T) {
	tests := []struct {
		name          string
		setupFunc     func(t *testing.T) string
		wantErr       bool
		sentinel      error
		errorContains string
	}{
		{
			name: "valid workbook",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "report.xlsx")
			},
		},
		{
			name: "upper case macro workbook",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "REPORT.XLSM")
			},
		},
		{
			name: "missing file",
			setupFunc: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.xlsx")
			},
			wantErr:       true,
			sentinel:      apperrors.ErrFileNotFound,
			errorContains: "does not exist",
		},
		{
			name: "directory",
			setupFunc: func(t *testing.T) string {
				return t.TempDir()
			},
			wantErr:       true,
			sentinel:      apperrors.ErrUnreadableWorkbook,
			errorContains: "is a directory",
		},
		{
			name: "legacy xls",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "report.xls")
			},
			wantErr:       true,
			sentinel:      apperrors.ErrUnreadableWorkbook,
			errorContains: "not a supported workbook",
		},
		{
			name: "lock file",
			setupFunc: func(t *testing.T) string {
				return writeFile(t, "~$report.xlsx")
			},
			wantErr:       true,
			sentinel:      apperrors.ErrUnreadableWorkbook,
			errorContains: "temporary Excel file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			err := NewFileValidator(logger).ValidateWorkbook(tt.setupFunc(t))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrTypeInput))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Contains(t, err.Error(), tt.errorContains)
		})
	}
}

func TestFileValidator_ValidateOutputDirectory(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	v := NewFileValidator(logger)

	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, v.ValidateOutputDirectory(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "probe file is removed")
	testutil.AssertLogAttr(t, logs, "component", "file_validator")

	blocker := writeFile(t, "blocker")
	err = v.ValidateOutputDirectory(filepath.Join(blocker, "sub"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeOutput))
	testutil.AssertLogContains(t, logs, slog.LevelError, "Failed to create output directory")
}

func TestIsWorkbookName(t *testing.T) {
	tests := map[string]bool{
		"a.xlsx":       true,
		"a.XLSX":       true,
		"a.xltm":       true,
		"a.xls":        false,
		"a.csv":        false,
		"xlsx":         false,
		"dir/a.b.xlsm": true,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsWorkbookName(name), name)
	}
}

func writeFile(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("test"), 0644))
	return path
}
