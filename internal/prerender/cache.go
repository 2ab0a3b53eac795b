// Package prerender keeps a small stock of precomputed values that are
// replenished in the background and discarded whenever the inputs they were
// computed from change.
package prerender

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"cellgrid/internal/core"
)

// Producer computes one value. It runs on a background goroutine and must
// not touch state owned by the caller of Take.
type Producer[T any] func() T

// Cache holds up to a fixed number of values from the current producer.
// Consumers and the replenishing goroutine synchronize on a mutex; a weighted
// semaphore of size one keeps at most one replenishment running.
type Cache[T any] struct {
	mu      sync.Mutex
	items   []T
	gen     uint64
	produce Producer[T]
	limit   int

	fill *semaphore.Weighted
	wg   sync.WaitGroup
}

// New returns an empty cache holding at most limit values.
func New[T any](limit int) *Cache[T] {
	return &Cache[T]{limit: limit, fill: semaphore.NewWeighted(1)}
}

// Invalidate drops every stored value and installs a new producer. Values
// still being computed by the previous producer are discarded on arrival.
func (c *Cache[T]) Invalidate(p Producer[T]) {
	c.mu.Lock()
	c.gen++
	c.items = c.items[:0]
	c.produce = p
	c.mu.Unlock()
}

// Take removes and returns the oldest stored value and schedules a refill.
func (c *Cache[T]) Take() (T, bool) {
	c.mu.Lock()
	var v T
	ok := len(c.items) > 0
	if ok {
		v = c.items[0]
		c.items = c.items[1:]
	}
	c.mu.Unlock()
	c.Replenish()
	return v, ok
}

// Len returns the number of stored values.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Replenish starts filling the cache in the background unless a fill is
// already running or there is no producer.
func (c *Cache[T]) Replenish() {
	if c.limit <= 0 || !c.fill.TryAcquire(1) {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer c.fill.Release(1)
		c.run()
	}()
}

func (c *Cache[T]) run() {
	for {
		c.mu.Lock()
		gen, p, full := c.gen, c.produce, len(c.items) >= c.limit
		c.mu.Unlock()
		if p == nil || full {
			return
		}
		v := p()
		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			core.Logger().Debug("discard stale prerender", "generation", gen)
			continue
		}
		c.items = append(c.items, v)
		c.mu.Unlock()
	}
}

// Wait blocks until the running replenishment finishes or ctx is done.
func (c *Cache[T]) Wait(ctx context.Context) error {
	if err := c.fill.Acquire(ctx, 1); err != nil {
		return err
	}
	c.fill.Release(1)
	c.wg.Wait()
	return nil
}
