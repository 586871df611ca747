package client

import "sync"

// cache holds one resource list between refetches. Get serves the cached
// list when valid and refetches otherwise; mutations either Invalidate
// (refetch on next read) or Upsert/Remove (patch in place).
type cache[T any] struct {
	mu    sync.Mutex
	items []T
	valid bool
}

func (c *cache[T]) Get(fetch func() ([]T, error)) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.valid {
		out := make([]T, len(c.items))
		copy(out, c.items)
		return out, nil
	}

	items, err := fetch()
	if err != nil {
		return nil, err
	}

	c.items = items
	c.valid = true

	out := make([]T, len(items))
	copy(out, items)
	return out, nil
}

func (c *cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.valid = false
}

func (c *cache[T]) Set(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = items
	c.valid = true
}

func (c *cache[T]) Upsert(match func(T) bool, update func(T) T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return
	}
	for i, item := range c.items {
		if match(item) {
			c.items[i] = update(item)
		}
	}
}

func (c *cache[T]) Remove(match func(T) bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		return
	}
	kept := c.items[:0]
	for _, item := range c.items {
		if !match(item) {
			kept = append(kept, item)
		}
	}
	c.items = kept
}
