// Package mdpdf converts a restricted Markdown dialect to paginated PDF
// without a browser.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := mdpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown: "# Hello\n\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.pdf", result.PDF, 0644)
//
// Conditions that do not stop a conversion, such as an unterminated code
// fence or characters the font cannot draw, are reported in
// result.Warnings.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Cleaning (line endings, byte order mark, control characters)
//  2. Block parsing: headings, paragraphs, fenced code, rules and tables
//  3. Line classification inside each block (lists, quotes, links, images, ...)
//  4. Inline tokenizing of **bold** and *italic* spans
//  5. Layout onto an fpdf canvas with word wrapping and automatic page breaks
//
// ParseDocument and RenderDocument expose stages 2 and 3-5 on their own, for
// callers that bring their own Canvas or use NewPDFCanvas:
//
//	c, err := mdpdf.NewPDFCanvas(nil, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pdf, warnings, err := mdpdf.RenderDocument(ctx, mdpdf.ParseDocument(text), c, nil)
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := mdpdf.NewConverter(
//	    mdpdf.WithTimeout(2 * time.Minute),
//	    mdpdf.WithTheme("compact"),
//	    mdpdf.WithAssetPath("/path/to/custom/assets"),
//	    mdpdf.WithFontDir("/usr/share/fonts/noto"),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, mdpdf.Input{
//	    Markdown:  content,
//	    SourceDir: "/path/to/markdown",  // for relative image paths
//	    Page:      &mdpdf.PageSettings{Size: "letter", Orientation: "portrait", Margin: 15},
//	    Footer:    &mdpdf.Footer{ShowPageNumber: true},
//	    Author:    "Jane Doe",
//	})
//
// # Fonts
//
// Without WithFontDir the theme's families must be PDF core fonts
// (Helvetica, Times, Courier, ...) and text is encoded as Windows-1252;
// other characters are drawn as "?" and counted in a warning. With
// WithFontDir, each family is loaded from {Family}-Regular.ttf (and the
// optional -Bold, -Italic, -BoldItalic faces) and any character the font
// covers is drawn.
//
// # Images
//
// Image lines are read from the local filesystem, relative to
// Input.SourceDir. Remote images are never fetched. For untrusted input,
// WithLocalImages(false) draws every image as its alt text instead.
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool so each worker owns a converter:
//
//	pool := mdpdf.NewConverterPool(4)
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Custom Themes
//
// Override built-in themes using an asset directory:
//
//	assets/
//	└── themes/
//	    └── custom.yaml
//
// A theme document only lists the keys it changes:
//
//	name: custom
//	body:
//	  family: Times
//	  size: 11
//	h1:
//	  color: "#8b0000"
package mdpdf
