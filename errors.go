package mdpdf

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrInputTooLarge = errors.New("markdown content exceeds size limit")
	ErrRender        = errors.New("layout failed")
	ErrPDFGeneration = errors.New("PDF generation failed")
	ErrFontNotFound  = errors.New("font not found")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Footer validation errors.
	ErrInvalidFooterPosition = errors.New("invalid footer position")

	// Theme and asset loading errors.
	ErrThemeNotFound    = errors.New("theme not found")
	ErrInvalidTheme     = errors.New("invalid theme")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
