// Package memo provides the time-boxed memoization layer of the catalog
// service. Results are stored per (operation, normalized arguments) and
// expire by TTL only; failures are never stored.
package memo

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/sboesen2/Drug-Interaction-Dashboard/internal/infrastructure/monitoring/logging"
)

// DefaultTTL bounds how stale a served result may be.
const DefaultTTL = time.Hour

// DefaultLoadTimeout bounds a shared load once it is detached from its callers.
const DefaultLoadTimeout = 30 * time.Second

// Recorder observes hits and misses. Implemented by the Prometheus collector.
type Recorder interface {
	RecordCacheHit(operation string)
	RecordCacheMiss(operation string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCacheHit(string)  {}
func (nopRecorder) RecordCacheMiss(string) {}

// Memoizer caches operation results in a Store.
type Memoizer struct {
	store       Store
	ttl         time.Duration
	loadTimeout time.Duration
	group       singleflight.Group
	logger   logging.Logger
	recorder Recorder
}

type Option func(*Memoizer)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(m *Memoizer) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithLoadTimeout overrides DefaultLoadTimeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(m *Memoizer) {
		if d > 0 {
			m.loadTimeout = d
		}
	}
}

// WithRecorder attaches hit/miss instrumentation.
func WithRecorder(r Recorder) Option {
	return func(m *Memoizer) {
		if r != nil {
			m.recorder = r
		}
	}
}

// New returns a Memoizer over store.
func New(store Store, log logging.Logger, opts ...Option) *Memoizer {
	m := &Memoizer{
		store:       store,
		ttl:         DefaultTTL,
		loadTimeout: DefaultLoadTimeout,
		logger:      log.Named("memo"),
		recorder:    nopRecorder{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL returns the configured expiry.
func (m *Memoizer) TTL() time.Duration { return m.ttl }

// Key builds "<operation>:<arg1>|<arg2>..." with every argument trimmed and
// lower-cased, so "Aspirin" and " aspirin " share an entry.
func Key(operation string, args ...string) string {
	norm := make([]string, len(args))
	for i, a := range args {
		norm[i] = strings.ToLower(strings.TrimSpace(a))
	}
	return operation + ":" + strings.Join(norm, "|")
}

// Invalidate drops every entry of operation.
func (m *Memoizer) Invalidate(ctx context.Context, operation string) (int64, error) {
	return m.store.DeleteByPrefix(ctx, operation+":")
}

// Do returns the memoized result for (operation, args) or calls load and
// stores its result. Concurrent misses on the same key share one load, which
// keeps the first caller's context values but not its cancellation. A caller
// whose ctx ends stops waiting without affecting the others. A failing load
// is returned as is and nothing is stored. Store faults are logged and
// bypassed.
func Do[T any](ctx context.Context, m *Memoizer, operation string, args []string, load func(ctx context.Context) (T, error)) (T, error) {
	key := Key(operation, args...)

	if v, ok := lookup[T](ctx, m, key); ok {
		m.recorder.RecordCacheHit(operation)
		return v, nil
	}
	m.recorder.RecordCacheMiss(operation)

	ch := m.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.loadTimeout)
		defer cancel()
		v, err := load(loadCtx)
		if err != nil {
			return v, err
		}
		m.save(loadCtx, key, v)
		return v, nil
	})
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		v, _ := r.Val.(T)
		return v, r.Err
	}
}

func lookup[T any](ctx context.Context, m *Memoizer, key string) (T, bool) {
	var zero T
	data, ok, err := m.store.Get(ctx, key)
	if err != nil {
		m.logger.Warn("memo store read failed", logging.String("key", key), logging.Err(err))
		return zero, false
	}
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		m.logger.Warn("memo entry undecodable, reloading", logging.String("key", key), logging.Err(err))
		return zero, false
	}
	return v, true
}

func (m *Memoizer) save(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		m.logger.Warn("memo entry unencodable", logging.String("key", key), logging.Err(err))
		return
	}
	if err := m.store.Set(ctx, key, data, m.ttl); err != nil {
		m.logger.Warn("memo store write failed", logging.String("key", key), logging.Err(err))
	}
}

//Personal.AI order the ending
