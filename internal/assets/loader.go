package assets

import (
	"fmt"
	"strings"
)

// Loader returns raw theme documents by name (without the .yaml extension).
type Loader interface {
	// LoadTheme returns ErrThemeNotFound when the theme does not exist and
	// ErrInvalidAssetName when the name could address another file.
	LoadTheme(name string) ([]byte, error)
}

// ValidateName rejects names that are empty or contain path separators or
// dots, so a name always maps to exactly one file inside the themes directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
