// Package validation checks extraction inputs and outputs before any work
// starts, so the executables fail fast with a clear message instead of half
// way through a run.
package validation

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileValidator validates workbook inputs and CSV output destinations for
// the command-line executables.
type FileValidator struct {
	logger *slog.Logger
}

// NewFileValidator creates a validator. A nil logger falls back to the
// default slog logger.
func NewFileValidator(logger *slog.Logger) *FileValidator {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileValidator{logger: logger}
}

// ValidateWorkbook checks that the input path exists, is a regular file and
// carries an Excel extension.
func (v *FileValidator) ValidateWorkbook(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		v.logger.Error("Input workbook does not exist",
			slog.String("path", path))
		return fmt.Errorf("input workbook %s does not exist", path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		v.logger.Error("Input path is a directory, not a workbook",
			slog.String("path", path))
		return fmt.Errorf("%s is a directory, expected a workbook file", path)
	}
	if info.Size() == 0 {
		v.logger.Error("Input workbook is empty",
			slog.String("path", path))
		return fmt.Errorf("input workbook %s is empty", path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".xlsx" && ext != ".xlsm" {
		v.logger.Error("Unsupported workbook extension",
			slog.String("path", path),
			slog.String("extension", ext))
		return fmt.Errorf("unsupported workbook extension %q, expected .xlsx or .xlsm", ext)
	}
	return nil
}

// ValidateOutputPath checks that the output destination is writable: the
// parent directory is created if missing and must not shadow a regular file.
func (v *FileValidator) ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}

	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0755); err != nil {
			v.logger.Error("Failed to create output directory",
				slog.String("directory", dir),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to create output directory %s: %w", dir, err)
		}
	case err != nil:
		return fmt.Errorf("failed to stat output directory %s: %w", dir, err)
	case !info.IsDir():
		v.logger.Error("Output parent is not a directory",
			slog.String("path", dir))
		return fmt.Errorf("%s is not a directory", dir)
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("output path %s is a directory", path)
	}
	return nil
}
