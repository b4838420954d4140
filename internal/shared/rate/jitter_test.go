package rate

import (
	"context"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

// TestNewJitter_CreatesJitter verifies that NewJitter creates a working rate limiter.
func TestNewJitter_CreatesJitter(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jitter := NewJitter(ctx, 10)
	require.NotNil(t, jitter)
	require.NotNil(t, jitter.Chan())
	require.Equal(t, 10, jitter.Limit())
}

// TestJitter_Wait_ReturnsPermit verifies that Wait() hands out permits.
func TestJitter_Wait_ReturnsPermit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jitter := NewJitter(ctx, 10)

	waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
	defer waitCancel()
	require.True(t, jitter.Wait(waitCtx))
}

// TestJitter_Wait_RespectsCallerContext returns false when the caller gives up.
func TestJitter_Wait_RespectsCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jitter := NewJitter(ctx, 1)
	// drain the first permit so the next one is a second away
	require.True(t, jitter.Wait(ctx))

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer waitCancel()
	require.False(t, jitter.Wait(waitCtx))
}

// TestJitter_StopsOnContextCancel verifies that the channel is closed when the context is cancelled.
func TestJitter_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	jitter := NewJitter(ctx, 100)
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-jitter.Chan():
			if !ok {
				require.False(t, jitter.Wait(context.Background()))
				return
			}
		case <-deadline:
			t.Fatal("channel should be closed after context cancel")
		}
	}
}
