package memory

import (
	"context"
	"sync"
)

// collection is a keyed, insertion-ordered set of records guarded by a single
// RWMutex. Values are stored by value so callers never alias stored state.
type collection[T any] struct {
	mu    sync.RWMutex
	ids   IDGenerator
	order []string
	items map[string]T

	setID func(*T, string)
}

func newCollection[T any](ids IDGenerator, setID func(*T, string)) *collection[T] {
	return &collection[T]{
		ids:   ids,
		items: make(map[string]T),
		setID: setID,
	}
}

func (c *collection[T]) get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok, nil
}

func (c *collection[T]) list(ctx context.Context, keep func(*T) bool) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if keep == nil || keep(&item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// insert assigns a fresh id to item and appends it.
func (c *collection[T]) insert(ctx context.Context, item T) (T, error) {
	if err := ctx.Err(); err != nil {
		return item, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.ids.NewID()
	for {
		if _, taken := c.items[id]; !taken {
			break
		}
		id = c.ids.NewID()
	}
	c.setID(&item, id)
	c.items[id] = item
	c.order = append(c.order, id)
	return item, nil
}

// update runs apply on a copy of the stored record and commits it when apply
// succeeds. found is false when id is unknown.
func (c *collection[T]) update(ctx context.Context, id string, apply func(*T) error) (item T, found bool, err error) {
	if err := ctx.Err(); err != nil {
		return item, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	item, found = c.items[id]
	if !found {
		return item, false, nil
	}
	if err := apply(&item); err != nil {
		return item, true, err
	}
	// ids are immutable
	c.setID(&item, id)
	c.items[id] = item
	return item, true, nil
}

func (c *collection[T]) remove(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (c *collection[T]) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *collection[T]) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = nil
	c.items = make(map[string]T)
}
