// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForFontNotFound returns hints for missing TrueType font files.
// Suggests MDPDF_FONT_DIR when unset and a volume mount inside containers.
func ForFontNotFound() string {
	hints := []string{"expected {Family}-Regular.ttf, -Bold.ttf, -Italic.ttf, -BoldItalic.ttf"}

	if os.Getenv("MDPDF_FONT_DIR") == "" {
		hints = append(hints, "set MDPDF_FONT_DIR or --font-dir")
	}

	if IsInContainer() {
		hints = append(hints, "mount the font directory into the container")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow operations.
func ForTimeout() string {
	return format("for large documents, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Suggest the first user-level path (contains the go-mdpdf app directory)
	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), "/go-mdpdf/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound returns hints listing the available themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a theme file path")
}

// ForInputTooLarge returns hints for documents over the size limit.
func ForInputTooLarge() string {
	return format("raise limits.maxInputBytes or use --max-size")
}

// filepathSlash normalises Windows separators for substring checks.
func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
