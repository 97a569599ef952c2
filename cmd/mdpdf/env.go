package main

import (
	"io"
	"os"
	"time"

	"github.com/alnah/go-mdpdf/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time and the base configuration.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Used when no --config is given
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
	}
}
