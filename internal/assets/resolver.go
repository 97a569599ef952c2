package assets

import "errors"

// Resolver tries a custom directory first and falls back to the built-in
// themes when the custom directory does not define the requested name.
type Resolver struct {
	custom   Loader // nil without a custom path
	embedded Loader
}

// NewResolver creates a Resolver. An empty customBasePath uses only the
// built-in themes; an invalid one is an error.
func NewResolver(customBasePath string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}
	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme returns the custom theme when present, the built-in one otherwise.
// Validation and I/O errors from the custom directory are returned as is.
func (r *Resolver) LoadTheme(name string) ([]byte, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}
	data, err := r.custom.LoadTheme(name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}
	return r.embedded.LoadTheme(name)
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ Loader = (*Resolver)(nil)
