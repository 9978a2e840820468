// Package signal cancels the root context on SIGINT/SIGTERM, with a way to hold
// cancellation off while another program owns the terminal.
package signal

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mu sync.Mutex
	// holds counts nested Hold calls.
	holds int
)

// WithSignalCancel returns a context that is cancelled when SIGINT or SIGTERM is received.
// The returned cancel function should be called to release the signal handler.
func WithSignalCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-sigCh:
				if Held() {
					// The foreground program got the same signal.
					continue
				}
				cancel()
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return ctx, cancel
}

// Hold stops signals from cancelling contexts until Release is called.
// Calls nest.
func Hold() {
	mu.Lock()
	defer mu.Unlock()
	holds++
}

// Release undoes one Hold. A signal delivered while held is dropped, since it
// was aimed at the foreground program.
func Release() {
	mu.Lock()
	defer mu.Unlock()
	if holds > 0 {
		holds--
	}
}

// Held reports whether signal cancellation is currently held.
func Held() bool {
	mu.Lock()
	defer mu.Unlock()
	return holds > 0
}
