package main

import (
	"errors"
	"os"

	md2docx "github.com/ianmenethil/html-md2docx"
	"github.com/ianmenethil/html-md2docx/internal/config"
)

// Exit codes for the md2docx CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All documents processed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2docx.ErrLoadDocument) ||
		errors.Is(err, md2docx.ErrSaveDocument) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrUnknownCategory) ||
		errors.Is(err, config.ErrInvalidColor) ||
		errors.Is(err, config.ErrInvalidMode) ||
		errors.Is(err, config.ErrInvalidShape) ||
		errors.Is(err, md2docx.ErrUnknownCategory) ||
		errors.Is(err, md2docx.ErrInvalidMatchMode) ||
		errors.Is(err, md2docx.ErrInvalidStyle) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	return ExitGeneral
}
