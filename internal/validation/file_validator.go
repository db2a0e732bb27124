package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	apperrors "storeinsight/internal/errors"
)

// workbookExtensions are the spreadsheet formats the loader can open
var workbookExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".xltx": true,
	".xltm": true,
}

// FileValidator checks the input workbook and output directory of a run
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a new file validator
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{
		logger: logger,
	}
}

// ValidateInputFile checks that path exists, is a regular file and is readable.
// A missing path yields a MissingFileError.
func (v *FileValidator) ValidateInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Warn("Input file does not exist",
			slog.String("file", path))
		return apperrors.NewMissingFileError(path, err)
	}
	if err != nil {
		v.logger.Error("Failed to stat input file",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("failed to stat file %s", path), err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a file",
			slog.String("path", path))
		return apperrors.NewAppValidationError(fmt.Sprintf("%s is a directory, not a file", path))
	}

	file, err := os.Open(path)
	if err != nil {
		v.logger.Error("Input file is not readable",
			slog.String("file", path),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("file %s is not readable", path), err)
	}
	file.Close()

	if ext := strings.ToLower(filepath.Ext(path)); !workbookExtensions[ext] {
		v.logger.Warn("Input file does not have a workbook extension",
			slog.String("file", path),
			slog.String("extension", ext))
	}

	v.logger.Debug("Input file validated",
		slog.String("file", path),
		slog.Int64("size", info.Size()))
	return nil
}

// EnsureOutputDirectory creates dir when missing and reports whether it did.
func (v *FileValidator) EnsureOutputDirectory(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			v.logger.Error("Output path exists and is not a directory",
				slog.String("path", dir))
			return false, apperrors.NewStorageError(fmt.Sprintf("%s is not a directory", dir), nil)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, apperrors.NewStorageError(fmt.Sprintf("failed to stat directory %s", dir), err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		v.logger.Error("Failed to create output directory",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return false, apperrors.NewStorageError(fmt.Sprintf("failed to create output directory %s", dir), err)
	}

	v.logger.Info("Output directory created",
		slog.String("directory", dir))
	return true, nil
}

// ValidateOutputDirectory checks that dir accepts new files
func (v *FileValidator) ValidateOutputDirectory(dir string) error {
	testFile := filepath.Join(dir, ".write_test")
	file, err := os.Create(testFile)
	if err != nil {
		v.logger.Error("Output directory is not writable",
			slog.String("directory", dir),
			slog.String("error", err.Error()))
		return apperrors.NewStorageError(fmt.Sprintf("output directory %s is not writable", dir), err)
	}
	file.Close()
	os.Remove(testFile)

	v.logger.Debug("Output directory validated",
		slog.String("directory", dir))
	return nil
}
