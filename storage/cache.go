// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package storage

import (
	"context"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedStore fronts a slower [Store] with a bounded LRU of recent reads.
// Writes go through to the backing store before the cache is updated.
// Misses are cached too, so repeated reads of absent keys stay local.
type CachedStore struct {
	mu      sync.Mutex
	backing Store
	cache   *lru.Cache[string, cached]
}

type cached struct {
	value string
	found bool
}

// NewCachedStore caches up to size entries of backing.
func NewCachedStore(backing Store, size int) (*CachedStore, error) {
	c, err := lru.New[string, cached](size)
	if err != nil {
		return nil, fmt.Errorf("storage: cache: %w", err)
	}
	return &CachedStore{backing: backing, cache: c}, nil
}

// Backing returns the store behind the cache.
func (c *CachedStore) Backing() Store { return c.backing }

// Len returns the number of cached entries.
func (c *CachedStore) Len() int { return c.cache.Len() }

func (c *CachedStore) Get(ctx context.Context, key string) (string, bool, error) {
	if e, ok := c.cache.Get(key); ok {
		return e.value, e.found, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	v, found, err := c.backing.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	c.cache.Add(key, cached{value: v, found: found})
	return v, found, nil
}

func (c *CachedStore) Set(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.backing.Set(ctx, key, value); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, cached{value: value, found: true})
	return nil
}

func (c *CachedStore) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.backing.Delete(ctx, key); err != nil {
		c.cache.Remove(key)
		return err
	}
	c.cache.Add(key, cached{})
	return nil
}

func (c *CachedStore) Keys(ctx context.Context) ([]string, error) {
	return c.backing.Keys(ctx)
}

func (c *CachedStore) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.backing.Clear(ctx)
	c.cache.Purge()
	return err
}
