//go:build windows

package main

import "os"

// shutdownSignals cancel the command context.
// syscall.SIGTERM is not delivered on Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
