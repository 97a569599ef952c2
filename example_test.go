package mdpdf_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alnah/go-mdpdf"
)

// Example demonstrates basic markdown to PDF conversion.
func Example() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Hello World\n\nThis is a **test**.",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(bytes.HasPrefix(result.PDF, []byte("%PDF")), result.Pages, result.Title)
	// Output: true 1 Hello World
}

// Example_warnings shows recoverable conditions reported with the result.
func Example_warnings() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "Intro\n\n```go\nfmt.Println(\"never closed\")\n",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, w := range result.Warnings {
		fmt.Println(w)
	}
	// Output: line 3: malformed fence: code fence is never closed; content kept as a code block
}

// Example_pageSettings demonstrates page size, orientation and footer.
func Example_pageSettings() {
	conv, err := mdpdf.NewConverter(mdpdf.WithTheme("compact"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Landscape\n\n| a | b |\n|---|---|\n| 1 | 2 |",
		Page: &mdpdf.PageSettings{
			Size:        mdpdf.PageSizeLetter,
			Orientation: mdpdf.OrientationLandscape,
			Margin:      15,
		},
		Footer: &mdpdf.Footer{Position: mdpdf.FooterRight, ShowPageNumber: true},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Pages)
	// Output: 1
}

// Example_validation shows validation errors matched with errors.Is.
func Example_validation() {
	conv, err := mdpdf.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	_, err = conv.Convert(context.Background(), mdpdf.Input{
		Markdown: "# Doc",
		Page:     &mdpdf.PageSettings{Size: "a5", Orientation: "portrait", Margin: 10},
	})
	fmt.Println(errors.Is(err, mdpdf.ErrInvalidPageSize))
	// Output: true
}

// ExampleConverterPool demonstrates parallel conversion with a pool.
func ExampleConverterPool() {
	pool := mdpdf.NewConverterPool(2)
	defer pool.Close()

	docs := []string{"# One", "# Two", "# Three"}
	titles := make([]string, len(docs))

	var wg sync.WaitGroup
	for i, md := range docs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			if conv == nil {
				return
			}
			defer pool.Release(conv)

			result, err := conv.Convert(context.Background(), mdpdf.Input{Markdown: md})
			if err == nil {
				titles[i] = result.Title
			}
		}()
	}
	wg.Wait()

	fmt.Println(titles)
	// Output: [One Two Three]
}

// ExampleParseDocument shows the block structure of a document.
func ExampleParseDocument() {
	doc := mdpdf.ParseDocument("# Intro\nHello\n\n---\n## Next\n- a\n- b")
	for _, b := range doc.Blocks {
		fmt.Printf("%s %d %q %d\n", b.Kind, b.Level, b.Title, len(b.Lines))
	}
	// Output:
	// heading 1 "Intro" 2
	// rule 0 "" 0
	// heading 2 "Next" 2
}
