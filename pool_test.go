package mdpdf

// Notes:
// - ResolvePoolSize: explicit values, automatic sizing and bounds
// - ConverterPool: lazy creation, reuse after release, creation failures and
//   idempotent Close

import (
	"errors"
	"runtime"
	"sync"
	"testing"
)

// Compile-time interface check.
var _ interface {
	Acquire() *Converter
	Release(*Converter)
	Size() int
	Close() error
} = (*ConverterPool)(nil)

// ---------------------------------------------------------------------------
// TestResolvePoolSize - Pool sizing
// ---------------------------------------------------------------------------

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{"explicit takes priority", 4, 4},
		{"explicit=1 for sequential", 1, 1},
		{"explicit is capped", MaxPoolSize + 10, MaxPoolSize},
		{"zero uses GOMAXPROCS", 0, min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
		{"negative uses GOMAXPROCS", -3, min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConverterPool - Acquire, release and close
// ---------------------------------------------------------------------------

func TestNewConverterPool_MinimumSize(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(0)
	defer pool.Close()

	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestConverterPool_ReusesReleased(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTheme("compact"))
	defer pool.Close()

	first := pool.Acquire()
	if first == nil {
		t.Fatalf("Acquire() returned nil: %v", pool.InitError())
	}
	if first.Theme().Name != "compact" {
		t.Errorf("converter theme = %q, want compact", first.Theme().Name)
	}
	pool.Release(first)

	second := pool.Acquire()
	if second != first {
		t.Error("Acquire() after Release should return the released converter")
	}
	pool.Release(second)
}

func TestConverterPool_ConcurrentAcquire(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(2)
	defer pool.Close()

	var wg sync.WaitGroup
	for range 6 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv := pool.Acquire()
			if conv == nil {
				t.Error("Acquire() returned nil")
				return
			}
			pool.Release(conv)
		}()
	}
	wg.Wait()

	pool.mu.Lock()
	created := pool.created
	pool.mu.Unlock()
	if created > 2 {
		t.Errorf("created %d converters, want at most 2", created)
	}
}

func TestConverterPool_InitError(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1, WithTheme("missing"))
	defer pool.Close()

	if conv := pool.Acquire(); conv != nil {
		t.Fatal("Acquire() should return nil when the converter cannot be built")
	}
	if !errors.Is(pool.InitError(), ErrThemeNotFound) {
		t.Errorf("InitError() = %v, want ErrThemeNotFound", pool.InitError())
	}

	// A failed creation frees its slot.
	pool.mu.Lock()
	created := pool.created
	pool.mu.Unlock()
	if created != 0 {
		t.Errorf("created = %d after failure, want 0", created)
	}
}

func TestConverterPool_Close(t *testing.T) {
	t.Parallel()

	pool := NewConverterPool(1)
	conv := pool.Acquire()

	if err := pool.Close(); err != nil {
		t.Errorf("Close() unexpected error: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() unexpected error: %v", err)
	}

	// Release after Close is a no-op.
	pool.Release(conv)
	pool.Release(nil)
}
