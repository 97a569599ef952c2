package mdpdf

import (
	"errors"

	"github.com/alnah/go-mdpdf/internal/assets"
	"github.com/alnah/go-mdpdf/internal/theme"
)

// DefaultTheme is the name of the built-in theme used when none is selected.
const DefaultTheme = "default"

// AssetLoader defines the contract for loading theme documents.
// Implementations may load from filesystem, embedded assets, a database, etc.
//
// The library provides NewAssetLoader() for filesystem-based loading with
// fallback to embedded themes. Implement this interface for custom backends.
type AssetLoader interface {
	// LoadTheme loads a YAML theme document by name (without .yaml extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	LoadTheme(name string) ([]byte, error)
}

// Theme is the set of fonts, sizes, colours and spacings a document is drawn with.
type Theme = theme.Theme

// ParseTheme decodes a YAML theme document over the default theme and
// validates it. Errors wrap ErrInvalidTheme.
func ParseTheme(data []byte) (*Theme, error) {
	t, err := theme.Parse(data)
	if err != nil {
		return nil, wrapError(ErrInvalidTheme, err)
	}
	return t, nil
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return assets.ThemeNames()
}

// NewAssetLoader creates an AssetLoader for the given base path.
// If basePath is empty, returns a loader using only embedded themes.
// If basePath is set, {basePath}/themes/{name}.yaml takes precedence with
// fallback to embedded.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &assetLoaderAdapter{resolver: resolver}, nil
}

// assetLoaderAdapter maps internal asset errors to public sentinels.
type assetLoaderAdapter struct {
	resolver *assets.Resolver
}

func (a *assetLoaderAdapter) LoadTheme(name string) ([]byte, error) {
	data, err := a.resolver.LoadTheme(name)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return data, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assets.ErrThemeNotFound):
		return wrapError(ErrThemeNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrThemeNotFound, err) // an invalid name cannot exist
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidAssetPath, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedError{sentinel: sentinel, original: original}
}

type wrappedError struct {
	sentinel error
	original error
}

func (e *wrappedError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedError) Unwrap() error {
	return e.sentinel
}
