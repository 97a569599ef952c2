package main

// Notes:
// - This file contains test helpers and mocks used across the command tests.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mdpdf "github.com/alnah/go-mdpdf"
	"github.com/alnah/go-mdpdf/internal/config"
)

// ---------------------------------------------------------------------------
// Environment helpers
// ---------------------------------------------------------------------------

// lockedBuffer is a bytes.Buffer safe for concurrent writers and readers.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// newTestEnv returns an Environment writing to buffers with a fixed clock.
func newTestEnv() (*Environment, *lockedBuffer, *lockedBuffer) {
	stdout, stderr := &lockedBuffer{}, &lockedBuffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
	}
	return env, stdout, stderr
}

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Mock Implementations - For unit testing
// ---------------------------------------------------------------------------

// mockConverter records inputs and returns a fixed result.
type mockConverter struct {
	result *mdpdf.ConvertResult
	err    error

	mu     sync.Mutex
	inputs []mdpdf.Input
}

func (m *mockConverter) Convert(_ context.Context, in mdpdf.Input) (*mdpdf.ConvertResult, error) {
	m.mu.Lock()
	m.inputs = append(m.inputs, in)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &mdpdf.ConvertResult{PDF: []byte("%PDF-1.4 mock"), Pages: 1}, nil
}

func (m *mockConverter) recorded() []mdpdf.Input {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mdpdf.Input(nil), m.inputs...)
}

// mockPool hands out a single shared converter.
type mockPool struct {
	conv    CLIConverter // nil simulates creation failure
	size    int
	initErr error

	acquired atomic.Int32
	released atomic.Int32
}

func (p *mockPool) Acquire() CLIConverter {
	p.acquired.Add(1)
	return p.conv
}

func (p *mockPool) Release(CLIConverter) { p.released.Add(1) }

func (p *mockPool) Size() int {
	if p.size == 0 {
		return 1
	}
	return p.size
}

func (p *mockPool) InitError() error { return p.initErr }
