// Package pipeline holds the text stages around parsing: cleaning the raw
// Markdown before it is segmented into blocks, and normalising code blocks
// after.
//
// Parsing, line classification and drawing live in the document, markup and
// layout packages. The root mdpdf package strings the stages together:
//
//	Preprocess -> document.Parse -> ExpandTabs -> layout.Renderer
package pipeline
