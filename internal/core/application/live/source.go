// Package live keeps in-memory snapshots of the fleet database current.
//
// A Source loads a value from storage, republishes it whenever the change feed
// reports a write to its collection, and hands immutable snapshots to readers
// and subscribers. Views never write through a Source; commands go through
// the unit of work and the resulting change triggers a reload here.
package live

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"fleetops/internal/core/ports"
	"fleetops/internal/pkg/metrics"
)

// ErrSourceIsStopped is returned by Run when the feed closes its stream.
var ErrSourceIsStopped = errors.New("change feed closed")

// Loader reads the full value of a source from storage.
type Loader[T any] func(ctx context.Context) (T, error)

// Snapshot is one loaded value. Values are shared between readers and must
// not be modified.
type Snapshot[T any] struct {
	Value    T
	Version  uint64
	LoadedAt time.Time
}

// Source is an observable, reloadable value bound to one collection.
type Source[T any] struct {
	name       string
	collection string
	load       Loader[T]
	size       func(T) int
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time

	mu      sync.RWMutex
	current Snapshot[T]
	loaded  bool
	subs    map[uint64]chan Snapshot[T]
	nextSub uint64
	// started counts loads begun; published is the load behind current.
	started   uint64
	published uint64
}

// Option configures a Source.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// WithLogger sets the logger used for reload failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithMetrics counts reloads.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// NewSource creates a source named name that reloads on changes to
// collection. size reports how many documents a value holds, for metrics.
func NewSource[T any](name, collection string, load Loader[T], size func(T) int, opts ...Option) *Source[T] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Source[T]{
		name:       name,
		collection: collection,
		load:       load,
		size:       size,
		logger:     o.logger.With("component", "live", "source", name),
		metrics:    o.metrics,
		now:        time.Now,
		subs:       make(map[uint64]chan Snapshot[T]),
	}
}

// Name returns the source name.
func (s *Source[T]) Name() string {
	return s.name
}

// Current returns the latest snapshot, loading it first when nothing has been
// loaded yet.
func (s *Source[T]) Current(ctx context.Context) (Snapshot[T], error) {
	s.mu.RLock()
	snap, loaded := s.current, s.loaded
	s.mu.RUnlock()

	if loaded {
		return snap, nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the value and publishes it to subscribers. On failure the
// previous snapshot stays current. A load that finishes after a later load
// has already been published is dropped and the newer snapshot is returned.
func (s *Source[T]) Refresh(ctx context.Context) (Snapshot[T], error) {
	s.mu.Lock()
	s.started++
	gen := s.started
	s.mu.Unlock()

	value, err := s.load(ctx)
	if err != nil {
		s.metrics.ObserveRefresh(s.name, 0, err)
		return Snapshot[T]{}, err
	}
	s.metrics.ObserveRefresh(s.name, s.size(value), nil)

	s.mu.Lock()
	if gen < s.published {
		snap := s.current
		s.mu.Unlock()
		return snap, nil
	}
	s.published = gen
	s.current = Snapshot[T]{
		Value:    value,
		Version:  s.current.Version + 1,
		LoadedAt: s.now().UTC(),
	}
	s.loaded = true
	snap := s.current
	for _, ch := range s.subs {
		offer(ch, snap)
	}
	s.mu.Unlock()

	return snap, nil
}

// Run keeps the source current until ctx is done. It loads once, then reloads
// after every burst of changes to the collection. Reload failures are logged
// and the previous snapshot is kept.
func (s *Source[T]) Run(ctx context.Context, feed ports.ChangeFeed) error {
	changes, err := feed.Subscribe(ctx, s.collection)
	if err != nil {
		return err
	}

	if _, err := s.Refresh(ctx); err != nil {
		s.logger.ErrorContext(ctx, "initial load failed", "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return ErrSourceIsStopped
			}
			drain(changes)
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.logger.ErrorContext(ctx, "reload failed", "error", err)
			}
		}
	}
}

// Subscribe streams snapshots until ctx is done. The current snapshot, if
// any, is delivered first. A slow subscriber only sees the latest snapshot.
func (s *Source[T]) Subscribe(ctx context.Context) <-chan Snapshot[T] {
	ch := make(chan Snapshot[T], 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	if s.loaded {
		ch <- s.current
	}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// offer replaces whatever is buffered in ch with snap. Callers hold s.mu, so
// there is a single sender per channel.
func offer[T any](ch chan Snapshot[T], snap Snapshot[T]) {
	select {
	case <-ch:
	default:
	}
	ch <- snap
}

func drain(changes <-chan ports.Change) {
	for {
		select {
		case _, ok := <-changes:
			if !ok {
				return
			}
		default:
			return
		}
	}
}
