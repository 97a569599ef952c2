package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// themeFlags holds theme and font flags.
type themeFlags struct {
	theme     string // Name or path of a theme YAML
	assetPath string // Directory holding themes/{name}.yaml
	fontDir   string // TrueType font directory
}

// renderFlags holds layout toggles.
type renderFlags struct {
	noHighlight  bool
	noSplitWords bool
}

// limitFlags holds resource limit flags.
type limitFlags struct {
	timeout string // Duration string, parsed by resolveTimeoutWithEnv
	maxSize int    // Maximum markdown bytes per document
	workers int    // Pool size (0 = auto)
}

// documentFlags holds document metadata flags.
type documentFlags struct {
	title  string
	author string
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// footerFlags holds footer-related flags.
type footerFlags struct {
	position     string
	text         string
	noPageNumber bool
	disabled     bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common   commonFlags
	output   string
	theme    themeFlags
	render   renderFlags
	limits   limitFlags
	document documentFlags
	page     pageFlags
	footer   footerFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	maxUpload int64
	theme     themeFlags
	render    renderFlags
	limits    limitFlags
	page      pageFlags
	footer    footerFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing and warnings")
}

// addThemeFlags adds theme and font flags to a FlagSet.
func addThemeFlags(fs *flag.FlagSet, f *themeFlags) {
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name or YAML file path")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom theme directory")
	fs.StringVar(&f.fontDir, "font-dir", "", "TrueType font directory")
}

// addRenderFlags adds layout toggles to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code syntax colouring")
	fs.BoolVar(&f.noSplitWords, "no-split-words", false, "wrap only between emphasis spans")
}

// addLimitFlags adds resource limit flags to a FlagSet.
func addLimitFlags(fs *flag.FlagSet, f *limitFlags) {
	fs.StringVar(&f.timeout, "timeout", "", "per-document timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.maxSize, "max-size", 0, "maximum markdown bytes per document (0 = default)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
}

// addDocumentFlags adds document metadata flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.StringVar(&f.title, "title", "", "PDF title (\"\" = first H1 or file name)")
	fs.StringVar(&f.author, "author", "", "PDF author")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in millimetres (5-50)")
}

// addFooterFlags adds footer flags to a FlagSet.
func addFooterFlags(fs *flag.FlagSet, f *footerFlags) {
	fs.StringVar(&f.position, "footer-position", "", "footer position: left, center, right")
	fs.StringVar(&f.text, "footer-text", "", "custom footer text")
	fs.BoolVar(&f.noPageNumber, "no-page-number", false, "hide page numbers in footer")
	fs.BoolVar(&f.disabled, "no-footer", false, "disable footer")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, stderr io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addRenderFlags(fs, &f.render)
	addLimitFlags(fs, &f.limits)
	addDocumentFlags(fs, &f.document)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)

	fs.Usage = func() { printConvertUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags. Positional args are rejected.
func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default from config, 127.0.0.1:8080)")
	fs.Int64Var(&f.maxUpload, "max-upload", 0, "maximum request body bytes (0 = config value)")

	addCommonFlags(fs, &f.common)
	addThemeFlags(fs, &f.theme)
	addRenderFlags(fs, &f.render)
	addLimitFlags(fs, &f.limits)
	addPageFlags(fs, &f.page)
	addFooterFlags(fs, &f.footer)

	fs.Usage = func() { printServeUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}

	return f, nil
}
