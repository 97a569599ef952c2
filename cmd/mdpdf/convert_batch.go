package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/fileutil"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input mdpdf.Input) (*mdpdf.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*mdpdf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
	InitError() error
}

// poolAdapter exposes *mdpdf.ConverterPool through the Pool interface.
type poolAdapter struct {
	pool *mdpdf.ConverterPool
}

// Acquire returns a converter, or nil if one could not be created.
// The nil check avoids handing out a non-nil interface holding a nil pointer.
func (a *poolAdapter) Acquire() CLIConverter {
	conv := a.pool.Acquire()
	if conv == nil {
		return nil
	}
	return conv
}

// Release returns a converter obtained from Acquire.
// Panics if conv was not produced by this adapter (programmer error).
func (a *poolAdapter) Release(conv CLIConverter) {
	c, ok := conv.(*mdpdf.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", conv))
	}
	a.pool.Release(c)
}

// Size returns the pool capacity.
func (a *poolAdapter) Size() int { return a.pool.Size() }

// InitError returns the last converter creation failure.
func (a *poolAdapter) InitError() error { return a.pool.InitError() }

// Close releases every pooled converter.
func (a *poolAdapter) Close() error { return a.pool.Close() }

// warmUp creates one converter so configuration errors surface before any
// file is read.
func warmUp(pool Pool) error {
	conv := pool.Acquire()
	if conv == nil {
		return initError(pool)
	}
	pool.Release(conv)
	return nil
}

// initError wraps the pool's creation failure in ErrConverterInit.
func initError(pool Pool) error {
	if err := pool.InitError(); err != nil {
		return fmt.Errorf("%w: %w", ErrConverterInit, err)
	}
	return ErrConverterInit
}

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	page   *mdpdf.PageSettings
	footer *mdpdf.Footer
	title  string // Fixed title for every file ("" = per file)
	author string
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Pages      int
	Warnings   []mdpdf.Warning
	Err        error
	Duration   time.Duration
}

// convertBatch processes files concurrently using the converter pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				// Converter creation failed, mark remaining jobs as failed
				err := initError(pool)
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	fail := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrReadMarkdown, err))
	}

	markdown := string(content)
	convResult, err := conv.Convert(ctx, mdpdf.Input{
		Markdown:  markdown,
		SourceDir: filepath.Dir(f.InputPath),
		Page:      params.page,
		Footer:    params.footer,
		Title:     documentTitle(params.title, markdown, f.InputPath),
		Author:    params.author,
	})
	if err != nil {
		return fail(err)
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		return fail(fmt.Errorf("creating output directory: %w%s", err, hints.ForOutputDirectory()))
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.PDF, filePermissions); err != nil {
		return fail(fmt.Errorf("%w: %w", ErrWritePDF, err))
	}

	result.Pages = convResult.Pages
	result.Warnings = convResult.Warnings
	result.Duration = time.Since(start)
	return result
}

// documentTitle returns the PDF title: the fixed title if set, otherwise the
// first level-1 heading, otherwise the file name without extension.
func documentTitle(fixed, markdown, inputPath string) string {
	if fixed != "" {
		return fixed
	}
	if h := mdpdf.FirstHeading(mdpdf.ParseDocument(markdown)); h != "" {
		return h
	}
	return fileutil.ReplaceExtension(filepath.Base(inputPath), "")
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Warnings  int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
		summary.Warnings += len(r.Warnings)
	}
	return summary
}

// printResultsWithWriter outputs conversion results using the provided writers.
// A lone failure is left to the caller, which returns it as the command error.
// Returns the number of failed conversions.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			if len(results) > 1 {
				fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			}
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d page(s), %v)\n", r.InputPath, r.OutputPath, r.Pages, r.Duration.Round(time.Millisecond))
			for _, w := range r.Warnings {
				fmt.Fprintf(env.Stderr, "warning: %s: %s\n", r.InputPath, w)
			}
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
			if n := len(r.Warnings); n > 0 {
				fmt.Fprintf(env.Stderr, "warning: %s: %d warning(s), use --verbose for details\n", r.InputPath, n)
			}
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
