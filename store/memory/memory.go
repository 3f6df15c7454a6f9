// Package memory provides an in-memory Store implementation for tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"
)

// Collection is an in-memory whole-collection store. The zero value is not
// usable; construct with NewCollection.
//
// Load and Save copy the slice both ways, so callers never share backing
// arrays with the store.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{}
}

func (c *Collection[T]) Load(_ context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

func (c *Collection[T]) Save(_ context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
	return nil
}

// Len reports the stored collection size. Test helper.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
