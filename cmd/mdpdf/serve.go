package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
	"github.com/alnah/go-mdpdf/internal/fileutil"
)

// ErrListen is returned when the server cannot bind its address.
var ErrListen = errors.New("failed to listen")

// Server timing and form limits.
const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second
	multipartMemory   = 8 << 20 // Larger uploads spill to temp files
)

// textDownloadName names PDFs generated from pasted text.
const textDownloadName = "markdown-document.pdf"

// Form field names accepted by the conversion endpoints.
const (
	fieldFile = "file"
	fieldText = "markdown-text"
)

// uploadExtensions are the file extensions accepted by POST /convert.
var uploadExtensions = []string{".md", ".markdown", ".txt"}

// runServe starts the HTTP server and blocks until ctx is canceled.
func runServe(ctx context.Context, flags *serveFlags, env *Environment) error {
	if err := validateWorkers(flags.limits.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfig(flags.common.config, envCfg, env)
	if err != nil {
		return err
	}

	mergeServeFlags(flags, cfg)
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

	poolSize := mdpdf.ResolvePoolSize(resolveWorkers(flags.limits.workers, envCfg.Workers))
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Pool size: %d\n", poolSize)
	}

	// Uploaded markdown is untrusted: never read images from the host
	opts := append(converterOptions(cfg, timeout), mdpdf.WithLocalImages(false))
	pool := &poolAdapter{pool: mdpdf.NewConverterPool(poolSize, opts...)}
	defer func() { _ = pool.Close() }()

	if err := warmUp(pool); err != nil {
		return err
	}

	params := &conversionParams{
		page:   page,
		footer: footer,
		title:  cfg.Document.Title,
		author: cfg.Document.Author,
	}
	srv := newServer(pool, params, cfg.Server.MaxUploadBytes, env, flags.common.quiet)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrListen, err)
	}

	httpServer := &http.Server{
		Handler:           srv,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Listening on http://%s\n", ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.Serve(ln) }()

	select {
	case err := <-errCh:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	return nil
}

// mergeServeFlags merges serve flags into config. CLI values override config values.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) {
	mergeSharedFlags(flags.theme, flags.render, flags.limits, flags.page, flags.footer, cfg)

	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.maxUpload > 0 {
		cfg.Server.MaxUploadBytes = flags.maxUpload
	}
}

// server handles the conversion endpoints.
type server struct {
	pool      Pool
	params    *conversionParams
	maxUpload int64
	now       func() time.Time
	quiet     bool
	mux       *http.ServeMux

	logMu sync.Mutex
	log   io.Writer
}

// newServer wires the routes. maxUpload <= 0 leaves request bodies unbounded.
func newServer(pool Pool, params *conversionParams, maxUpload int64, env *Environment, quiet bool) *server {
	s := &server{
		pool:      pool,
		params:    params,
		maxUpload: maxUpload,
		now:       env.Now,
		quiet:     quiet,
		mux:       http.NewServeMux(),
		log:       env.Stderr,
	}
	s.mux.HandleFunc("POST /convert", s.handleConvert)
	s.mux.HandleFunc("POST /convert_text", s.handleConvertText)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

// ServeHTTP dispatches the request and logs one line per request.
func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := s.now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	if s.quiet {
		return
	}
	s.logMu.Lock()
	defer s.logMu.Unlock()
	fmt.Fprintf(s.log, "%s %s %d %v\n", r.Method, r.URL.Path, rec.status, s.now().Sub(start).Round(time.Millisecond))
}

// handleHealth reports liveness.
func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleConvert converts an uploaded markdown file, or the markdown-text
// field when no file is attached.
func (s *server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	file, header, err := r.FormFile(fieldFile)
	if err != nil {
		text := r.FormValue(fieldText)
		if strings.TrimSpace(text) == "" {
			writeError(w, http.StatusBadRequest, "No file or markdown text provided")
			return
		}
		s.convert(w, r, text, textDownloadName)
		return
	}
	defer file.Close()

	if !fileutil.HasExtension(header.Filename, uploadExtensions...) {
		writeError(w, http.StatusBadRequest, "Invalid file format. Please upload a markdown file (.md, .markdown, .txt)")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Error reading uploaded file: "+err.Error())
		return
	}

	name := fileutil.ReplaceExtension(filepath.Base(header.Filename), ".pdf")
	s.convert(w, r, string(content), name)
}

// handleConvertText converts the markdown-text form field.
func (s *server) handleConvertText(w http.ResponseWriter, r *http.Request) {
	if !s.parseForm(w, r) {
		return
	}

	text := r.FormValue(fieldText)
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, "No markdown text provided")
		return
	}
	s.convert(w, r, text, textDownloadName)
}

// parseForm bounds the body and parses url-encoded or multipart forms.
// It writes the error response and returns false on failure.
func (s *server) parseForm(w http.ResponseWriter, r *http.Request) bool {
	if s.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	}

	err := r.ParseMultipartForm(multipartMemory)
	if err == nil || errors.Is(err, http.ErrNotMultipart) {
		return true
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit))
		return false
	}
	writeError(w, http.StatusBadRequest, "Invalid form data: "+err.Error())
	return false
}

// convert renders markdown on a pooled converter and streams the PDF back
// as an attachment named downloadName.
func (s *server) convert(w http.ResponseWriter, r *http.Request, markdown, downloadName string) {
	conv := s.pool.Acquire()
	if conv == nil {
		writeError(w, http.StatusInternalServerError, initError(s.pool).Error())
		return
	}
	defer s.pool.Release(conv)

	result, err := conv.Convert(r.Context(), mdpdf.Input{
		Markdown: markdown,
		Page:     s.params.page,
		Footer:   s.params.footer,
		Title:    documentTitle(s.params.title, markdown, downloadName),
		Author:   s.params.author,
	})
	if err != nil {
		writeError(w, statusFor(err), "Error converting markdown: "+err.Error())
		return
	}

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": downloadName}))
	h.Set("Content-Length", strconv.Itoa(len(result.PDF)))
	h.Set("X-Mdpdf-Pages", strconv.Itoa(result.Pages))
	h.Set("X-Mdpdf-Warnings", strconv.Itoa(len(result.Warnings)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.PDF)
}

// statusFor maps conversion errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, mdpdf.ErrEmptyMarkdown):
		return http.StatusBadRequest
	case errors.Is(err, mdpdf.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes {"error": msg} with status.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

// WriteHeader records status before delegating.
func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
