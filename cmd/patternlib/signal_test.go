package main

// Notes:
// - notifyContext: we test cancellation through stop() and parent
//   propagation. Real signal delivery is not exercised.

import (
	"context"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation behavior
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	t.Run("stop cancels", func(t *testing.T) {
		t.Parallel()

		ctx, stop := notifyContext(context.Background())
		select {
		case <-ctx.Done():
			t.Fatal("context cancelled before stop")
		default:
		}

		stop()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("context not cancelled after stop")
		}
	})

	t.Run("parent cancellation propagates", func(t *testing.T) {
		t.Parallel()

		parent, cancel := context.WithCancel(context.Background())
		ctx, stop := notifyContext(parent)
		defer stop()

		cancel()
		select {
		case <-ctx.Done():
		case <-time.After(time.Second):
			t.Fatal("parent cancellation not propagated")
		}
	})
}
