//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals cancel the command context: Ctrl-C and the SIGTERM sent by
// process supervisors and container runtimes.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}
