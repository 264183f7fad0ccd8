package cache

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// Cache is a size-bounded TTL cache of read views. Concurrent misses for the
// same key share one load.
type Cache struct {
	lru   *expirable.LRU[string, any]
	group singleflight.Group

	// epoch moves on every invalidation; a load that started before the
	// move is returned to its callers but never stored
	mu    sync.Mutex
	epoch uint64
}

func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 512
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{lru: expirable.NewLRU[string, any](size, nil, ttl)}
}

// GetOrLoad returns the cached value of key or fills it with load. The shared
// load is detached from the caller's cancellation so one caller leaving does
// not fail the others; each caller still stops waiting on its own ctx.
func GetOrLoad[V any](ctx context.Context, c *Cache, key string, load func(ctx context.Context) (V, error)) (V, error) {
	if v, ok := c.lru.Get(key); ok {
		if typed, ok := v.(V); ok {
			return typed, nil
		}
	}

	ch := c.group.DoChan(key, func() (interface{}, error) {
		epoch := c.currentEpoch()
		v, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.epoch == epoch {
			c.lru.Add(key, v)
		}
		c.mu.Unlock()
		return v, nil
	})

	var zero V
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(V), nil
	}
}

// Invalidate drops the given keys.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epoch++
	for _, key := range keys {
		c.lru.Remove(key)
		c.group.Forget(key)
	}
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

func (c *Cache) currentEpoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}
