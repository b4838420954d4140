package rate

import (
	"context"
	"go.uber.org/ratelimit"
)

// Jitter hands out at most limit permits per second through a small burst buffer.
// Chan is closed once ctx is done.
type Jitter struct {
	ch    chan struct{}
	l     ratelimit.Limiter
	limit int
}

func NewJitter(ctx context.Context, limit int) *Jitter {
	brst := int(float64(limit) * 0.1)
	if brst < 1 {
		brst = 1
	}
	jitter := &Jitter{
		limit: limit,
		ch:    make(chan struct{}, brst),
		l:     ratelimit.New(limit),
	}
	go jitter.provider(ctx)
	return jitter
}

func (l *Jitter) provider(ctx context.Context) {
	defer close(l.ch)
	for {
		l.l.Take()
		select {
		case <-ctx.Done():
			return
		case l.ch <- struct{}{}:
		}
	}
}

// Wait blocks until a permit is available. It returns false when either ctx
// or the jitter itself is done.
func (l *Jitter) Wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case _, ok := <-l.ch:
		return ok
	}
}

func (l *Jitter) Limit() int { return l.limit }

func (l *Jitter) Chan() <-chan struct{} {
	return l.ch
}
