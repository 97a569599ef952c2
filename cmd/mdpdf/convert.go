package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage            = errors.New("invalid usage")
	ErrUnexpectedArgs   = errors.New("unexpected arguments")
	ErrNoInput          = errors.New("no input specified")
	ErrNoMarkdownFiles  = errors.New("no markdown files found")
	ErrReadMarkdown     = errors.New("failed to read markdown file")
	ErrWritePDF         = errors.New("failed to write PDF file")
	ErrInvalidTimeout   = errors.New("invalid timeout")
	ErrConverterInit    = errors.New("failed to initialize converter")
	ErrConversionFailed = errors.New("conversion failed")
)

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate worker count early
	if err := validateWorkers(flags.limits.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}

	// Merge CLI flags into config (CLI wins)
	mergeConvertFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeoutWithEnv(flags.limits.timeout, envCfg.Timeout, cfg.Limits.Timeout)
	if err != nil {
		return err
	}

	page, err := buildPageSettings(cfg)
	if err != nil {
		return err
	}

	footer, err := buildFooter(cfg)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	poolSize := mdpdf.ResolvePoolSize(resolveWorkers(flags.limits.workers, envCfg.Workers))
	if poolSize > len(files) {
		poolSize = len(files)
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	pool := &poolAdapter{pool: mdpdf.NewConverterPool(poolSize, converterOptions(cfg, timeout)...)}
	defer func() { _ = pool.Close() }()

	// Surface theme and font errors once instead of per file
	if err := warmUp(pool); err != nil {
		return err
	}

	params := &conversionParams{
		page:   page,
		footer: footer,
		title:  cfg.Document.Title,
		author: cfg.Document.Author,
	}

	results := convertBatch(ctx, pool, files, params)

	failedCount := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount == 0 {
		return nil
	}
	if len(results) == 1 {
		return results[0].Err
	}
	return fmt.Errorf("%w: %d of %d file(s)", ErrConversionFailed, failedCount, len(results))
}

// loadConfig returns the configuration for a command: the named config file
// (flag, then MDPDF_CONFIG) or the environment's base config, with
// environment variables applied on top.
func loadConfig(name string, envCfg *envConfig, env *Environment) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}

	var cfg *config.Config
	switch {
	case name != "":
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	case env.Config != nil:
		c := *env.Config
		cfg = &c
	default:
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeSharedFlags merges the flag groups common to convert and serve.
func mergeSharedFlags(tf themeFlags, rf renderFlags, lf limitFlags, pf pageFlags, ff footerFlags, cfg *config.Config) {
	// Theme flags
	if tf.theme != "" {
		cfg.Theme.Name = tf.theme
	}
	if tf.assetPath != "" {
		cfg.Theme.AssetPath = tf.assetPath
	}
	if tf.fontDir != "" {
		cfg.Fonts.Dir = tf.fontDir
	}

	// Render toggles only ever disable
	if rf.noHighlight {
		cfg.Render.Highlight = false
	}
	if rf.noSplitWords {
		cfg.Render.SplitWords = false
	}

	if lf.maxSize > 0 {
		cfg.Limits.MaxInputBytes = lf.maxSize
	}

	// Page flags
	if pf.size != "" {
		cfg.Page.Size = pf.size
	}
	if pf.orientation != "" {
		cfg.Page.Orientation = pf.orientation
	}
	if pf.margin > 0 {
		cfg.Page.Margin = pf.margin
	}

	// Footer flags
	if ff.position != "" {
		cfg.Footer.Position = ff.position
		cfg.Footer.Enabled = true
	}
	if ff.text != "" {
		cfg.Footer.Text = ff.text
		cfg.Footer.Enabled = true
	}
	if ff.noPageNumber {
		cfg.Footer.ShowPageNumber = false
	}
	if ff.disabled {
		cfg.Footer.Enabled = false
	}
}

// mergeConvertFlags merges convert flags into config. CLI values override config values.
func mergeConvertFlags(flags *convertFlags, cfg *config.Config) {
	mergeSharedFlags(flags.theme, flags.render, flags.limits, flags.page, flags.footer, cfg)

	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.author != "" {
		cfg.Document.Author = flags.document.author
	}
}

// resolveTimeoutWithEnv determines the per-document timeout.
// Priority: flag > env > config. Zero means the library default.
func resolveTimeoutWithEnv(flagValue string, envValue time.Duration, configValue string) (time.Duration, error) {
	if flagValue != "" {
		return parseTimeout(flagValue)
	}
	if envValue > 0 {
		return envValue, nil
	}
	if configValue != "" {
		return parseTimeout(configValue)
	}
	return 0, nil
}

// parseTimeout parses a positive duration string.
func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrInvalidTimeout, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w %q: must be positive", ErrInvalidTimeout, s)
	}
	return d, nil
}

// resolveWorkers picks the worker count: flag, then MDPDF_WORKERS, then auto (0).
func resolveWorkers(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, mdpdf.MaxPoolSize)
	}
	return 0
}

// converterOptions translates config into converter options.
func converterOptions(cfg *config.Config, timeout time.Duration) []mdpdf.Option {
	opts := []mdpdf.Option{
		mdpdf.WithTheme(cfg.Theme.Name),
		mdpdf.WithAssetPath(cfg.Theme.AssetPath),
		mdpdf.WithFontDir(cfg.Fonts.Dir),
		mdpdf.WithMaxInputSize(cfg.Limits.MaxInputBytes),
		mdpdf.WithHighlighting(cfg.Render.Highlight),
		mdpdf.WithSplitWords(cfg.Render.SplitWords),
	}
	if timeout > 0 {
		opts = append(opts, mdpdf.WithTimeout(timeout))
	}
	return opts
}

// buildPageSettings creates mdpdf.PageSettings from config, filling defaults.
func buildPageSettings(cfg *config.Config) (*mdpdf.PageSettings, error) {
	ps := &mdpdf.PageSettings{
		Size:        cfg.Page.Size,
		Orientation: cfg.Page.Orientation,
		Margin:      cfg.Page.Margin,
	}

	// Apply defaults
	if ps.Size == "" {
		ps.Size = mdpdf.PageSizeA4
	}
	if ps.Orientation == "" {
		ps.Orientation = mdpdf.OrientationPortrait
	}
	if ps.Margin == 0 {
		ps.Margin = mdpdf.DefaultMargin
	}

	if err := ps.Validate(); err != nil {
		return nil, err
	}
	return ps, nil
}

// buildFooter creates mdpdf.Footer from config. Returns nil when the footer is
// disabled or would be empty.
func buildFooter(cfg *config.Config) (*mdpdf.Footer, error) {
	if !cfg.Footer.Enabled || (!cfg.Footer.ShowPageNumber && cfg.Footer.Text == "") {
		return nil, nil
	}

	f := &mdpdf.Footer{
		Position:       cfg.Footer.Position,
		ShowPageNumber: cfg.Footer.ShowPageNumber,
		Text:           cfg.Footer.Text,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUnexpectedArgs, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
