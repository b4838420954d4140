// Package lifecycle turns a resource description into fetchers that drive the
// entity store through Begin and then Succeed or Fail.
package lifecycle

import (
	"context"
	"errors"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/Borislavv/go-ash-store/internal/api"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/policy"
	"github.com/Borislavv/go-ash-store/internal/store/state"
	"github.com/rs/zerolog"
)

var ErrRejected = errors.New("begin rejected by store")

// Dispatcher is the part of the store fetchers drive.
type Dispatcher interface {
	Dispatch(msg message.Msg) bool
	DispatchIf(msg message.Msg, pred func(rec *state.Record) bool) bool
	NextToken() uint64
}

// Resource describes one fetchable slot of a relation.
type Resource struct {
	Key message.Key
	// ShouldFetch is evaluated against the addressed record, which may be nil.
	ShouldFetch func(rec *state.Record, args message.Args) bool
	Bind        func(key message.Key, args message.Args) (api.Request, error)
	Transform   api.Transform
}

type Factory struct {
	store    Dispatcher
	getter   api.Getter
	cfg      *config.FetchCfg
	logger   zerolog.Logger
	counters *counters
}

func NewFactory(store Dispatcher, getter api.Getter, cfg *config.FetchCfg, logger zerolog.Logger) *Factory {
	return &Factory{
		store:    store,
		getter:   getter,
		cfg:      cfg,
		logger:   logger,
		counters: &counters{},
	}
}

func (f *Factory) New(res Resource) *Fetcher {
	return &Fetcher{factory: f, res: res}
}

func (f *Factory) Metrics() (begun, succeeded, failed, skipped int64) {
	return f.counters.snapshot()
}

func (f *Factory) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if f.cfg.Enabled() && f.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, f.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

type Fetcher struct {
	factory *Factory
	res     Resource
}

func (r *Fetcher) Key() message.Key { return r.res.Key }

// Fetch always begins a new request, superseding one that may be in flight.
// The returned channel yields the settled Succeed or Fail once it has been
// applied to the store, then closes.
func (r *Fetcher) Fetch(ctx context.Context, args message.Args) <-chan message.Msg {
	out, _ := r.start(ctx, args, nil)
	return out
}

// FetchIfNeeded begins a request only if ShouldFetch holds for the current record.
// The check and the Begin are applied atomically, so redundant callers
// share a single in-flight request. It returns false if nothing was started.
func (r *Fetcher) FetchIfNeeded(ctx context.Context, args message.Args) (<-chan message.Msg, bool) {
	return r.start(ctx, args, func(rec *state.Record) bool {
		return r.res.ShouldFetch(rec, args)
	})
}

// Retry begins a request only if the slot settled with an error.
func (r *Fetcher) Retry(ctx context.Context, args message.Args) (<-chan message.Msg, bool) {
	slot := r.res.Key.Slot
	return r.start(ctx, args, func(rec *state.Record) bool {
		return policy.ShouldRetry(rec, slot)
	})
}

func (r *Fetcher) start(ctx context.Context, args message.Args, pred func(*state.Record) bool) (<-chan message.Msg, bool) {
	f := r.factory
	h := message.Header{Key: r.res.Key, Args: args}
	out := make(chan message.Msg, 1)

	req, err := r.res.Bind(r.res.Key, args)
	if err != nil {
		// never reaches the store: there is no record to address
		r.settled(message.Fail{Header: h, Err: err}, out, true)
		return out, true
	}

	h.Token = f.store.NextToken()
	if !f.store.DispatchIf(message.Begin{Header: h}, pred) {
		if pred == nil {
			r.settled(message.Fail{Header: h, Err: ErrRejected}, out, true)
			return out, true
		}
		f.counters.skipped.Add(1)
		return nil, false
	}

	f.counters.begun.Add(1)
	f.logger.Debug().
		Str("resource", h.Key.String()).
		Uint64("token", h.Token).
		Str("path", req.Path).
		Msg("fetch begun")

	go func() {
		ctx, cancel := f.withTimeout(ctx)
		defer cancel()

		msg := r.call(ctx, h, req)
		r.settled(msg, out, f.store.Dispatch(msg))
	}()
	return out, true
}

func (r *Fetcher) call(ctx context.Context, h message.Header, req api.Request) message.Msg {
	body, err := r.factory.getter.Get(ctx, req)
	if err != nil {
		return message.Fail{Header: h, Err: err}
	}
	result, err := r.res.Transform(h.Key, h.Args, body)
	if err != nil {
		return message.Fail{Header: h, Err: err}
	}
	return message.Succeed{Header: h, Result: result}
}

// settled counts msg unless the store discarded it for a newer request,
// then delivers it to the caller.
func (r *Fetcher) settled(msg message.Msg, out chan<- message.Msg, applied bool) {
	f := r.factory
	if !applied {
		f.logger.Debug().
			Str("resource", msg.Head().Key.String()).
			Uint64("token", msg.Head().Token).
			Msg("fetch superseded")
		out <- msg
		close(out)
		return
	}
	switch m := msg.(type) {
	case message.Succeed:
		f.counters.succeeded.Add(1)
		f.logger.Debug().
			Str("resource", m.Key.String()).
			Uint64("token", m.Token).
			Msg("fetch succeeded")
	case message.Fail:
		f.counters.failed.Add(1)
		f.logger.Warn().
			Err(m.Err).
			Str("resource", m.Key.String()).
			Uint64("token", m.Token).
			Msg("fetch failed")
	}
	out <- msg
	close(out)
}
