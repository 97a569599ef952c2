package assets

// Notes:
// - built-in themes must also parse as valid themes; default.yaml mirrors
//   theme.Default field for field
// - symlink tests are skipped where the filesystem refuses symlinks

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-mdpdf/internal/theme"
)

// ---------------------------------------------------------------------------
// TestValidateName
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"simple", "default", false},
		{"hyphen", "my-theme", false},
		{"underscore", "my_theme", false},
		{"empty", "", true},
		{"slash traversal", "../secret", true},
		{"backslash traversal", "..\\secret", true},
		{"dot", "theme.yaml", true},
		{"absolute", "/etc/passwd", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateName(tt.in)
			if tt.wantErr != errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("ValidateName(%q) = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedLoader
// ---------------------------------------------------------------------------

func TestLoadTheme_Embedded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		theme   string
		wantErr error
	}{
		{"default", "default", nil},
		{"compact", "compact", nil},
		{"missing", "nonexistent", ErrThemeNotFound},
		{"invalid", "../default", ErrInvalidAssetName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data, err := LoadTheme(tt.theme)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadTheme(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTheme(%q) unexpected error: %v", tt.theme, err)
			}
			if _, err := theme.Parse(data); err != nil {
				t.Errorf("built-in theme %q does not parse: %v", tt.theme, err)
			}
		})
	}
}

func TestDefaultThemeMatchesCode(t *testing.T) {
	t.Parallel()

	data, err := LoadTheme("default")
	if err != nil {
		t.Fatal(err)
	}
	got, err := theme.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(theme.Default(), got); diff != "" {
		t.Errorf("default.yaml drifted from theme.Default (-code +yaml):\n%s", diff)
	}
}

func TestThemeNames(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]string{"compact", "default"}, ThemeNames()); diff != "" {
		t.Errorf("ThemeNames() mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestFilesystemLoader
// ---------------------------------------------------------------------------

func writeTheme(t *testing.T, base, name, content string) {
	t.Helper()
	dir := filepath.Join(base, "themes")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid directory", t.TempDir(), false},
		{"empty path", "", true},
		{"missing directory", "/nonexistent/path/abc123xyz", true},
		{"file instead of directory", file, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewFilesystemLoader(tt.path)
			if tt.wantErr != errors.Is(err, ErrInvalidBasePath) {
				t.Errorf("NewFilesystemLoader(%q) = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_LoadTheme(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTheme(t, base, "custom", "name: custom\n")

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}

	data, err := loader.LoadTheme("custom")
	if err != nil {
		t.Fatalf("LoadTheme(custom) error = %v", err)
	}
	if string(data) != "name: custom\n" {
		t.Errorf("LoadTheme(custom) = %q", data)
	}

	if _, err := loader.LoadTheme("absent"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(absent) error = %v, want ErrThemeNotFound", err)
	}
	if _, err := loader.LoadTheme("../x"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("LoadTheme(../x) error = %v, want ErrInvalidAssetName", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.yaml")
	if err := os.WriteFile(secret, []byte("name: secret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "themes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(base, "themes", "leak.yaml")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadTheme("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTheme(leak) error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// TestResolver
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	writeTheme(t, base, "default", "name: override\n")
	writeTheme(t, base, "mine", "name: mine\n")

	r, err := NewResolver(base)
	if err != nil {
		t.Fatal(err)
	}
	if !r.HasCustomLoader() {
		t.Fatal("expected custom loader")
	}

	tests := []struct {
		theme   string
		want    string
		wantErr error
	}{
		{theme: "default", want: "name: override\n"},
		{theme: "mine", want: "name: mine\n"},
		{theme: "nonexistent", wantErr: ErrThemeNotFound},
		{theme: "a/b", wantErr: ErrInvalidAssetName},
	}
	for _, tt := range tests {
		data, err := r.LoadTheme(tt.theme)
		if tt.wantErr != nil {
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadTheme(%q) error = %v, want %v", tt.theme, err, tt.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("LoadTheme(%q) unexpected error: %v", tt.theme, err)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("LoadTheme(%q) = %q, want %q", tt.theme, data, tt.want)
		}
	}

	// compact is not overridden and falls back to the embedded copy.
	data, err := r.LoadTheme("compact")
	if err != nil {
		t.Fatalf("LoadTheme(compact) error = %v", err)
	}
	embedded, _ := LoadTheme("compact")
	if string(data) != string(embedded) {
		t.Error("compact did not fall back to the embedded theme")
	}
}

func TestNewResolver(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver(\"\") error = %v", err)
	}
	if r.HasCustomLoader() {
		t.Error("expected embedded only")
	}
	if _, err := NewResolver("/nonexistent/path/abc123xyz"); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewResolver(bad) error = %v, want ErrInvalidBasePath", err)
	}
}
