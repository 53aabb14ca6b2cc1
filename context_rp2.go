//go:build rp2040 || rp2350

package main

import "context"

// Firmware never shuts down.
func rootContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(context.Background())
}
