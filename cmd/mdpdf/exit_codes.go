package main

import (
	"context"
	"errors"
	"os"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// Exit codes for mdpdf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Layout or PDF generation errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render errors (exit 4)
	if errors.Is(err, mdpdf.ErrRender) ||
		errors.Is(err, mdpdf.ErrPDFGeneration) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitRender
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWritePDF) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) ||
		errors.Is(err, ErrListen) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, mdpdf.ErrEmptyMarkdown) ||
		errors.Is(err, mdpdf.ErrInputTooLarge) ||
		errors.Is(err, mdpdf.ErrInvalidPageSize) ||
		errors.Is(err, mdpdf.ErrInvalidOrientation) ||
		errors.Is(err, mdpdf.ErrInvalidMargin) ||
		errors.Is(err, mdpdf.ErrInvalidFooterPosition) ||
		errors.Is(err, mdpdf.ErrThemeNotFound) ||
		errors.Is(err, mdpdf.ErrInvalidTheme) ||
		errors.Is(err, mdpdf.ErrInvalidAssetPath) ||
		errors.Is(err, mdpdf.ErrFontNotFound) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for well-known errors, or "".
// Config and output directory hints are attached where those errors occur.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdpdf.ErrFontNotFound):
		return hints.ForFontNotFound()
	case errors.Is(err, mdpdf.ErrThemeNotFound):
		return hints.ForThemeNotFound(mdpdf.ThemeNames())
	case errors.Is(err, mdpdf.ErrInputTooLarge):
		return hints.ForInputTooLarge()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	default:
		return ""
	}
}
