package main

import (
	"context"
	"os/signal"
)

// notifyContext returns a context that is canceled when a shutdown signal is
// received. A running batch stops picking up files and serve drains in-flight
// requests. Call stop() to release resources.
func notifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
