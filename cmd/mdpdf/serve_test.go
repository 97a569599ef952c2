package main

// Notes:
// - Handlers are exercised through httptest against newServer with mock or
//   real converter pools.
// - The body limit is tested with a url-encoded form, whose parser surfaces
//   *http.MaxBytesError unchanged.
// - runServe binds 127.0.0.1:0 and is stopped by canceling its context.
// No coverage gaps.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
)

// multipartBody builds a multipart form with an optional file part and
// optional text fields.
func multipartBody(t *testing.T, filename, content string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile(fieldFile, filename)
		if err != nil {
			t.Fatalf("setup: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

// formBody builds a url-encoded form.
func formBody(values url.Values) (*strings.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

// newMockServer returns a server over a mock converter.
func newMockServer(conv *mockConverter, maxUpload int64) (*server, *lockedBuffer) {
	env, _, stderr := newTestEnv()
	pool := &mockPool{conv: conv}
	return newServer(pool, &conversionParams{author: "Ada"}, maxUpload, env, false), stderr
}

// errorMessage decodes the {"error": ...} body.
func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body["error"]
}

// ---------------------------------------------------------------------------
// TestServer_Health - Liveness probe
// ---------------------------------------------------------------------------

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv, log := newMockServer(&mockConverter{}, 0)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"healthy"}` {
		t.Errorf("body = %q", got)
	}
	if !strings.Contains(log.String(), "GET /health 200") {
		t.Errorf("log = %q, want request line", log.String())
	}
}

// ---------------------------------------------------------------------------
// TestServer_Convert - POST /convert and POST /convert_text
// ---------------------------------------------------------------------------

func TestServer_Convert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		path         string
		body         func(t *testing.T) (io.Reader, string)
		convErr      error
		wantStatus   int
		wantFilename string
		wantMarkdown string
		wantError    string
	}{
		{
			name: "uploaded file",
			path: "/convert",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "notes.md", "# Notes\n", nil)
			},
			wantStatus:   http.StatusOK,
			wantFilename: "notes.pdf",
			wantMarkdown: "# Notes\n",
		},
		{
			name: "uploaded txt file",
			path: "/convert",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "dir/README.txt", "hello\n", nil)
			},
			wantStatus:   http.StatusOK,
			wantFilename: "README.pdf",
			wantMarkdown: "hello\n",
		},
		{
			name: "text field fallback",
			path: "/convert",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "", "", map[string]string{fieldText: "pasted\n"})
			},
			wantStatus:   http.StatusOK,
			wantFilename: textDownloadName,
			wantMarkdown: "pasted\n",
		},
		{
			name: "url-encoded text",
			path: "/convert_text",
			body: func(t *testing.T) (io.Reader, string) {
				return formBody(url.Values{fieldText: {"# Title\n"}})
			},
			wantStatus:   http.StatusOK,
			wantFilename: textDownloadName,
			wantMarkdown: "# Title\n",
		},
		{
			name: "bad extension",
			path: "/convert",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "image.png", "png", nil)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid file format",
		},
		{
			name: "nothing provided",
			path: "/convert",
			body: func(t *testing.T) (io.Reader, string) {
				return multipartBody(t, "", "", nil)
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No file or markdown text provided",
		},
		{
			name: "blank text",
			path: "/convert_text",
			body: func(t *testing.T) (io.Reader, string) {
				return formBody(url.Values{fieldText: {"   "}})
			},
			wantStatus: http.StatusBadRequest,
			wantError:  "No markdown text provided",
		},
		{
			name: "converter failure",
			path: "/convert_text",
			body: func(t *testing.T) (io.Reader, string) {
				return formBody(url.Values{fieldText: {"x"}})
			},
			convErr:    mdpdf.ErrPDFGeneration,
			wantStatus: http.StatusInternalServerError,
			wantError:  "Error converting markdown: PDF generation failed",
		},
		{
			name: "input too large",
			path: "/convert_text",
			body: func(t *testing.T) (io.Reader, string) {
				return formBody(url.Values{fieldText: {"x"}})
			},
			convErr:    mdpdf.ErrInputTooLarge,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantError:  "exceeds size limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := &mockConverter{err: tt.convErr}
			srv, _ := newMockServer(conv, 0)

			body, contentType := tt.body(t)
			req := httptest.NewRequest(http.MethodPost, tt.path, body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %q)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.wantError != "" {
				if msg := errorMessage(t, rec); !strings.Contains(msg, tt.wantError) {
					t.Errorf("error = %q, want to contain %q", msg, tt.wantError)
				}
				return
			}

			if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
				t.Errorf("Content-Type = %q, want application/pdf", got)
			}
			wantDisposition := "attachment; filename=" + tt.wantFilename
			if got := rec.Header().Get("Content-Disposition"); got != wantDisposition {
				t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
			}
			if got := rec.Header().Get("X-Mdpdf-Pages"); got != "1" {
				t.Errorf("X-Mdpdf-Pages = %q, want 1", got)
			}
			if rec.Body.String() != "%PDF-1.4 mock" {
				t.Errorf("body = %q", rec.Body.String())
			}

			inputs := conv.recorded()
			if len(inputs) != 1 {
				t.Fatalf("converter called %d times, want 1", len(inputs))
			}
			if inputs[0].Markdown != tt.wantMarkdown {
				t.Errorf("Markdown = %q, want %q", inputs[0].Markdown, tt.wantMarkdown)
			}
			if inputs[0].Author != "Ada" {
				t.Errorf("Author = %q, want Ada", inputs[0].Author)
			}
		})
	}
}

func TestServer_BodyLimit(t *testing.T) {
	t.Parallel()

	srv, _ := newMockServer(&mockConverter{}, 64)
	body, contentType := formBody(url.Values{fieldText: {strings.Repeat("a", 500)}})
	req := httptest.NewRequest(http.MethodPost, "/convert_text", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413 (body %q)", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "exceeds 64 bytes") {
		t.Errorf("error = %q", msg)
	}
}

func TestServer_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	srv, log := newMockServer(&mockConverter{}, 0)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/convert", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if !strings.Contains(log.String(), "GET /convert 405") {
		t.Errorf("log = %q, want request line", log.String())
	}
}

func TestServer_QuietSkipsLog(t *testing.T) {
	t.Parallel()

	env, _, stderr := newTestEnv()
	srv := newServer(&mockPool{conv: &mockConverter{}}, &conversionParams{}, 0, env, true)
	srv.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if stderr.String() != "" {
		t.Errorf("log = %q, want empty", stderr.String())
	}
}

func TestServer_PoolFailure(t *testing.T) {
	t.Parallel()

	env, _, _ := newTestEnv()
	pool := &mockPool{initErr: mdpdf.ErrFontNotFound}
	srv := newServer(pool, &conversionParams{}, 0, env, true)

	body, contentType := formBody(url.Values{fieldText: {"x"}})
	req := httptest.NewRequest(http.MethodPost, "/convert_text", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if msg := errorMessage(t, rec); !strings.Contains(msg, "font not found") {
		t.Errorf("error = %q", msg)
	}
}

// ---------------------------------------------------------------------------
// TestServer_RealPool - Untrusted uploads never load local images
// ---------------------------------------------------------------------------

func TestServer_RealPool(t *testing.T) {
	t.Parallel()

	pool := &poolAdapter{pool: mdpdf.NewConverterPool(1, mdpdf.WithLocalImages(false))}
	defer func() { _ = pool.Close() }()
	env, _, _ := newTestEnv()
	srv := newServer(pool, &conversionParams{}, 1<<20, env, true)

	body, contentType := multipartBody(t, "doc.md", "# Doc\n\n![secret](/etc/hostname)\n", nil)
	req := httptest.NewRequest(http.MethodPost, "/convert", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Error("body should be a PDF")
	}
	if got := rec.Header().Get("X-Mdpdf-Warnings"); got != "1" {
		t.Errorf("X-Mdpdf-Warnings = %q, want 1", got)
	}
}

// ---------------------------------------------------------------------------
// TestStatusFor - Conversion error to HTTP status
// ---------------------------------------------------------------------------

func TestStatusFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"empty", mdpdf.ErrEmptyMarkdown, http.StatusBadRequest},
		{"too large", mdpdf.ErrInputTooLarge, http.StatusRequestEntityTooLarge},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := statusFor(tt.err); got != tt.want {
				t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunServe - Listen, serve and shut down
// ---------------------------------------------------------------------------

func TestRunServe(t *testing.T) {
	t.Parallel()

	t.Run("serves until canceled", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		done := make(chan error, 1)
		go func() {
			done <- runServe(ctx, &serveFlags{addr: "127.0.0.1:0", limits: limitFlags{workers: 1}}, env)
		}()

		var base string
		deadline := time.Now().Add(10 * time.Second)
		for time.Now().Before(deadline) {
			if out := stdout.String(); strings.Contains(out, "Listening on ") {
				base = strings.TrimSpace(strings.TrimPrefix(out, "Listening on "))
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		if base == "" {
			cancel()
			t.Fatalf("server did not start, stdout %q", stdout.String())
		}

		resp, err := http.Get(base + "/health")
		if err != nil {
			t.Fatalf("GET /health: %v", err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}

		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("runServe() = %v, want nil", err)
			}
		case <-time.After(15 * time.Second):
			t.Fatal("runServe did not return after cancel")
		}
	})

	t.Run("unknown theme fails before listening", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := newTestEnv()
		flags := &serveFlags{addr: "127.0.0.1:0", theme: themeFlags{theme: "neon"}}

		err := runServe(context.Background(), flags, env)
		if !errors.Is(err, mdpdf.ErrThemeNotFound) {
			t.Errorf("error = %v, want ErrThemeNotFound", err)
		}
		if stdout.String() != "" {
			t.Errorf("stdout = %q, want empty", stdout.String())
		}
	})

	t.Run("bad address", func(t *testing.T) {
		t.Parallel()

		env, _, _ := newTestEnv()
		err := runServe(context.Background(), &serveFlags{addr: "not-an-address"}, env)
		if !errors.Is(err, ErrListen) {
			t.Errorf("error = %v, want ErrListen", err)
		}
	})
}
