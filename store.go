package ashstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/Borislavv/go-ash-store/config"
	"github.com/Borislavv/go-ash-store/internal/api"
	"github.com/Borislavv/go-ash-store/internal/lifecycle"
	"github.com/Borislavv/go-ash-store/internal/message"
	"github.com/Borislavv/go-ash-store/internal/respcache"
	"github.com/Borislavv/go-ash-store/internal/store"
	"github.com/Borislavv/go-ash-store/internal/telemetry"
	"github.com/rs/zerolog"
	"io"
)

var ErrUnknownResource = errors.New("unknown resource")

type AshStore interface {
	Fetcher(rel Relation, slot Slot) (*Fetcher, error)
	Fetch(ctx context.Context, key Key, args Args) <-chan Msg
	FetchIfNeeded(ctx context.Context, key Key, args Args) (<-chan Msg, bool)
	Retry(ctx context.Context, key Key, args Args) (<-chan Msg, bool)
	SaveInfo(rel Relation, tuple Tuple, info Info) bool
	Snapshot() *Snapshot
	Record(rel Relation, tuple Tuple) *Record
	Subscribe(fn Observer) (unsubscribe func())
	telemetry.Logger
	io.Closer
}

var _ AshStore = (*Store)(nil)

// Store wires the response cache, the api client, the entity store and
// a fetcher per resource together.
type Store struct {
	telemetry.Logger
	cache    respcache.Cacher
	client   *api.Client
	entities *store.Store
	factory  *lifecycle.Factory
	fetchers map[message.Key]*lifecycle.Fetcher
	cls      context.CancelFunc
}

func New(ctx context.Context, cfg *config.Store, logger zerolog.Logger, opts ...Option) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("nil store config")
	}
	cfg.AdjustConfig()

	cache, err := respcache.New(cfg.ResponseCache, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	opts = append([]Option{api.WithCache(cache), api.WithLogger(logger)}, opts...)
	client, err := api.New(ctx, &cfg.API, opts...)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("api client: %w", err)
	}

	entities := store.New(logger)
	factory := lifecycle.NewFactory(entities, client, cfg.Fetch, logger)

	fetchers := make(map[message.Key]*lifecycle.Fetcher)
	for _, res := range lifecycle.Resources() {
		fetchers[res.Key] = factory.New(res)
	}

	return &Store{
		Logger:   telemetry.New(ctx, cfg.Telemetry, logger, cache, client, factory, entities),
		cache:    cache,
		client:   client,
		entities: entities,
		factory:  factory,
		fetchers: fetchers,
		cls:      cancel,
	}, nil
}

func (s *Store) Fetcher(rel Relation, slot Slot) (*Fetcher, error) {
	key := Key{Relation: rel, Slot: slot}
	f, ok := s.fetchers[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, key)
	}
	return f, nil
}

func (s *Store) Fetch(ctx context.Context, key Key, args Args) <-chan Msg {
	f, err := s.Fetcher(key.Relation, key.Slot)
	if err != nil {
		return failed(key, args, err)
	}
	return f.Fetch(ctx, args)
}

func (s *Store) FetchIfNeeded(ctx context.Context, key Key, args Args) (<-chan Msg, bool) {
	f, err := s.Fetcher(key.Relation, key.Slot)
	if err != nil {
		return failed(key, args, err), true
	}
	return f.FetchIfNeeded(ctx, args)
}

func (s *Store) Retry(ctx context.Context, key Key, args Args) (<-chan Msg, bool) {
	f, err := s.Fetcher(key.Relation, key.Slot)
	if err != nil {
		return failed(key, args, err), true
	}
	return f.Retry(ctx, args)
}

// SaveInfo stores partial info (e.g. from a search result) unless full info was already fetched.
func (s *Store) SaveInfo(rel Relation, tuple Tuple, info Info) bool {
	return s.entities.Dispatch(message.NewSaveInfo(rel, tuple, info))
}

func (s *Store) Snapshot() *Snapshot { return s.entities.Snapshot() }

func (s *Store) Record(rel Relation, tuple Tuple) *Record {
	return s.entities.Snapshot().Record(rel, tuple)
}

func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	return s.entities.Subscribe(fn)
}

// Cache exposes the response cache, mostly for metrics.
func (s *Store) Cache() respcache.Cacher { return s.cache }

func (s *Store) Metrics() (begun, succeeded, failed, skipped int64) {
	return s.factory.Metrics()
}

// Close stops telemetry and the rate limiter. Fetches already in flight still settle.
func (s *Store) Close() error {
	s.cls()
	return nil
}

func failed(key Key, args Args, err error) <-chan Msg {
	out := make(chan Msg, 1)
	out <- message.Fail{Header: message.Header{Key: key, Args: args}, Err: err}
	close(out)
	return out
}
