// Package yamlutil isolates the YAML dependency behind a small decoding API
// shared by configuration files and themes.
package yamlutil

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML documents to prevent memory exhaustion (1MB).
var MaxInputSize = 1 << 20

var (
	ErrEmptyDocument  = errors.New("yamlutil: empty document")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
)

// Decode unmarshals data into v. With strict set, unknown keys are rejected.
// Fields absent from data keep the values already in v, so callers can decode
// on top of defaults.
func Decode(data []byte, v any, strict bool) error {
	if len(data) == 0 {
		return ErrEmptyDocument
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}

	var opts []yaml.DecodeOption
	if strict {
		opts = append(opts, yaml.Strict())
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// DecodeFile reads at most MaxInputSize bytes from path and decodes them
// strictly into v. The returned error wraps os.ErrNotExist when the file is
// missing.
func DecodeFile(path string, v any) error {
	f, err := os.Open(path) // #nosec G304 -- caller-provided path
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, int64(MaxInputSize)+1))
	if err != nil {
		return fmt.Errorf("yamlutil: reading %s: %w", path, err)
	}
	return Decode(data, v, true)
}
