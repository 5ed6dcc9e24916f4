// Package cache memoizes query results per key with mutation-driven,
// tag-based invalidation. One Cache instance is shared by all resource
// services of a client so that a write to a resource type marks every
// cached read of that type stale.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/singleflight"

	"github.com/eleveia/eleve-go/core"
)

type Status int

const (
	StatusUninitialized Status = iota
	StatusLoading
	StatusSuccess
	StatusError
)

type (
	entry struct {
		data      interface{}
		hasData   bool
		stale     bool
		err       error
		tags      map[string]struct{}
		fetchedAt time.Time
	}

	// flight tracks the consumers waiting on an in-flight fetch. When the
	// last one abandons (context cancelled), the fetch is cancelled and its
	// late result is discarded instead of being written to the cache.
	flight struct {
		ctx     context.Context
		cancel  context.CancelFunc
		waiters int
	}

	Options struct {
		Logger  core.Logger
		Metrics *Metrics
	}

	Cache struct {
		mu      sync.Mutex
		entries map[string]*entry
		flights map[string]*flight
		group   singleflight.Group
		log     core.Logger
		metrics *Metrics
	}
)

func New(opts Options) *Cache {
	logger := opts.Logger
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Cache{
		entries: make(map[string]*entry),
		flights: make(map[string]*flight),
		log:     logger,
		metrics: opts.Metrics,
	}
}

// Query returns the cached value for key when fresh; otherwise it issues
// exactly one fetch for the key no matter how many consumers ask
// concurrently. A failed fetch leaves any prior cached data intact.
func Query[T any](ctx context.Context, c *Cache, key string, tags []string, fetch func(context.Context) (T, error)) (T, error) {
	var zero T

	c.mu.Lock()
	if e := c.entries[key]; e != nil && e.hasData && !e.stale && e.err == nil {
		data := e.data
		c.mu.Unlock()
		c.metrics.hit()
		v, ok := data.(T)
		if !ok {
			return zero, errors.Errorf("cache: conflicting types cached under key %q", key)
		}
		return v, nil
	}
	fl := c.flights[key]
	if fl != nil && fl.ctx.Err() != nil {
		// every prior waiter abandoned this flight; a live joiner starts
		// over instead of inheriting the cancellation
		c.group.Forget(key)
		fl = nil
	}
	if fl == nil {
		fctx, cancel := context.WithCancel(context.Background())
		fl = &flight{ctx: fctx, cancel: cancel}
		c.flights[key] = fl
	}
	fl.waiters++
	c.mu.Unlock()
	c.metrics.miss()

	ch := c.group.DoChan(key, func() (interface{}, error) {
		c.metrics.inflight(1)
		defer c.metrics.inflight(-1)
		v, err := fetch(fl.ctx)
		c.settle(key, tags, fl, v, err)
		return v, err
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		v, ok := res.Val.(T)
		if !ok {
			return zero, errors.Errorf("cache: conflicting types cached under key %q", key)
		}
		return v, nil
	case <-ctx.Done():
		c.abandon(key)
		return zero, ctx.Err()
	}
}

// settle records the fetch outcome, unless every consumer abandoned the
// flight in the meantime: a response no one observes is dropped. A flight
// that was superseded by a later one for the same key is dropped too, so
// its stale outcome never shadows the fetch the live consumers are on.
func (c *Cache) settle(key string, tags []string, fl *flight, v interface{}, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.flights[key] != fl {
		c.metrics.discard()
		c.log.Debug("cache: discarding superseded response", map[string]interface{}{"key": key})
		return
	}
	delete(c.flights, key)
	if fl.waiters <= 0 {
		c.metrics.discard()
		c.log.Debug("cache: discarding abandoned response", map[string]interface{}{"key": key})
		return
	}

	e := c.entries[key]
	if e == nil {
		e = &entry{}
		c.entries[key] = e
	}
	e.tags = make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		e.tags[tag] = struct{}{}
	}
	if err != nil {
		e.err = err // prior data, if any, stays put
		return
	}
	e.data, e.hasData, e.err, e.stale = v, true, nil, false
	e.fetchedAt = time.Now()
}

func (c *Cache) abandon(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fl := c.flights[key]
	if fl == nil {
		return
	}
	fl.waiters--
	if fl.waiters <= 0 {
		fl.cancel()
	}
}

// Mutate runs a write operation; on success every entry tagged with one of
// tags is marked stale before the caller observes the result, so an
// immediate re-read always re-fetches.
func (c *Cache) Mutate(ctx context.Context, tags []string, op func(context.Context) error) error {
	if err := op(ctx); err != nil {
		return err
	}
	c.Invalidate(tags...)
	return nil
}

// Invalidate marks every cached entry carrying one of the given tags stale.
func (c *Cache) Invalidate(tags ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, e := range c.entries {
		for _, tag := range tags {
			if _, ok := e.tags[tag]; ok {
				e.stale = true
				c.metrics.invalidation()
				c.log.Debug("cache: invalidated", map[string]interface{}{"key": key, "tag": tag})
				break
			}
		}
	}
}

// Peek exposes the current entry state without triggering a fetch. The
// returned data may be stale; consumers use it to keep rendering the prior
// value while an error banner is up.
func Peek[T any](c *Cache, key string) (T, Status, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.flights[key]; ok {
		return zero, StatusLoading, nil
	}
	e := c.entries[key]
	if e == nil {
		return zero, StatusUninitialized, nil
	}
	v, _ := e.data.(T)
	if e.err != nil {
		return v, StatusError, e.err
	}
	if !e.hasData {
		return zero, StatusUninitialized, nil
	}
	return v, StatusSuccess, nil
}
