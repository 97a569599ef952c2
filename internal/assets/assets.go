package assets

var builtin = NewEmbeddedLoader()

// LoadTheme returns a built-in theme document.
func LoadTheme(name string) ([]byte, error) {
	return builtin.LoadTheme(name)
}

// ThemeNames lists the built-in themes.
func ThemeNames() []string {
	return builtin.Names()
}
