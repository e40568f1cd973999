package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "bluebook/internal/errors"
)

// WorkbookExtensions are the spreadsheet containers the reader can open.
var WorkbookExtensions = []string{".xlsx", ".xlsm", ".xltx", ".xltm"}

// FileValidator checks input and output paths before a run touches them.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger.With(slog.String("component", "file_validator")),
	}
}

// ValidateFile checks if a specific file exists and is readable
func (v *FileValidator) ValidateFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("File does not exist",
			slog.String("file", path))
		return apperrors.NewInputError(fmt.Sprintf("file %s does not exist", path), apperrors.ErrFileNotFound).
			WithContext("path", path)
	}
	if err != nil {
		v.logger.Error("Failed to stat file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError(fmt.Sprintf("failed to stat file %s", path), err).WithContext("path", path)
	}
	if info.IsDir() {
		v.logger.Error("Path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewInputError(fmt.Sprintf("%s is a directory, not a file", path), apperrors.ErrUnreadableWorkbook).
			WithContext("path", path)
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("File is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewInputError(fmt.Sprintf("file %s is not readable", path), err).WithContext("path", path)
	}
	file.Close()

	v.logger.Debug("File validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// ValidateWorkbook checks that path is a readable spreadsheet the reader can
// open. Legacy .xls files and Excel lock files ("~$report.xlsx") are rejected.
func (v *FileValidator) ValidateWorkbook(path string) error {
	if err := v.ValidateFile(path); err != nil {
		return err
	}

	if !IsWorkbookName(path) {
		ext := strings.ToLower(filepath.Ext(path))
		v.logger.Error("File is not a supported workbook",
			slog.String("file", path),
			slog.String("extension", ext))
		return apperrors.NewInputError(
			fmt.Sprintf("file %s is not a supported workbook (extension: %s)", path, ext),
			apperrors.ErrUnreadableWorkbook,
		).WithContext("path", path)
	}

	if strings.HasPrefix(filepath.Base(path), "~$") {
		v.logger.Warn("Refusing temporary Excel file",
			slog.String("file", path))
		return apperrors.NewInputError(fmt.Sprintf("file %s is a temporary Excel file", path), apperrors.ErrUnreadableWorkbook).
			WithContext("path", path)
	}
	return nil
}

// ValidateOutputDirectory ensures output directory exists or can be created
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewOutputError(fmt.Sprintf("failed to create output directory %s", dir), err).
			WithContext("directory", dir)
	}

	probe, err := os.CreateTemp(dir, ".write_test*")
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewOutputError(fmt.Sprintf("output directory %s is not writable", dir), err).
			WithContext("directory", dir)
	}
	probe.Close()
	os.Remove(probe.Name())

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}

// IsWorkbookName reports whether name has a supported workbook extension.
func IsWorkbookName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range WorkbookExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
