package canvas

import "errors"

var (
	// ErrFontNotFound indicates a theme font family with no usable font.
	ErrFontNotFound = errors.New("font not found")

	// ErrImage indicates an image that cannot be placed. It is recoverable:
	// the document stays valid and drawing can continue.
	ErrImage = errors.New("image unavailable")

	// ErrInvalidConfig indicates page settings fpdf cannot use.
	ErrInvalidConfig = errors.New("invalid canvas config")
)
