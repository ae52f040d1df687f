// Package optimistic keeps an in-memory view of an admin entity set that is
// updated before the remote write and rolled back when the write fails.
package optimistic

import (
	"errors"
	"sync"
	"time"
)

type Status string

const (
	StatusIdle   Status = "idle"
	StatusSaving Status = "saving"
	StatusSaved  Status = "saved"
	StatusFailed Status = "failed"
)

var ErrNotFound = errors.New("optimistic: item not found")

// SyncState is the last known outcome of a write on the collection.
type SyncState struct {
	Status    Status    `json:"status"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Collection is an ordered, id-keyed list of T. Every mutation follows the
// same two phases: apply the tentative list and mark it saving, then run
// persist. On success the status becomes saved; on error the snapshot is
// restored and the status becomes failed.
type Collection[T any] struct {
	write sync.Mutex // serializes mutations
	mu    sync.RWMutex
	name  string
	idOf  func(T) string
	items []T
	state SyncState
}

func NewCollection[T any](name string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{
		name:  name,
		idOf:  idOf,
		items: []T{},
		state: SyncState{Status: StatusIdle},
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Replace swaps the whole list, used after loading from the remote store.
func (c *Collection[T]) Replace(items []T) {
	c.write.Lock()
	defer c.write.Unlock()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = clone(items)
}

func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return clone(c.items)
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if c.idOf(item) == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Status() SyncState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Upsert replaces the item with the same id in place, or appends it.
func (c *Collection[T]) Upsert(item T, persist func(T) error) error {
	return c.mutate(func(items []T) ([]T, error) {
		id := c.idOf(item)
		for i := range items {
			if c.idOf(items[i]) == id {
				items[i] = item
				return items, nil
			}
		}
		return append(items, item), nil
	}, func() error { return persist(item) })
}

// Update applies fn to the current item with id under the write lock and
// persists the result. An error from fn leaves the collection untouched.
func (c *Collection[T]) Update(id string, fn func(T) (T, error), persist func(T) error) (T, error) {
	var updated T
	err := c.mutate(func(items []T) ([]T, error) {
		for i := range items {
			if c.idOf(items[i]) == id {
				next, err := fn(items[i])
				if err != nil {
					return nil, err
				}
				items[i] = next
				updated = next
				return items, nil
			}
		}
		return nil, ErrNotFound
	}, func() error { return persist(updated) })
	return updated, err
}

// Remove deletes the item with id.
func (c *Collection[T]) Remove(id string, persist func(string) error) error {
	return c.mutate(func(items []T) ([]T, error) {
		for i := range items {
			if c.idOf(items[i]) == id {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	}, func() error { return persist(id) })
}

// mutate runs one write at a time. Readers see the tentative list while
// persist is in flight.
func (c *Collection[T]) mutate(apply func([]T) ([]T, error), persist func() error) error {
	c.write.Lock()
	defer c.write.Unlock()

	c.mu.Lock()
	snapshot := clone(c.items)
	next, err := apply(clone(c.items))
	if err != nil {
		c.mu.Unlock()
		return err
	}
	c.items = next
	c.setState(StatusSaving, nil)
	c.mu.Unlock()

	persistErr := persist()

	c.mu.Lock()
	defer c.mu.Unlock()
	if persistErr != nil {
		c.items = snapshot
		c.setState(StatusFailed, persistErr)
		return persistErr
	}
	c.setState(StatusSaved, nil)
	return nil
}

func (c *Collection[T]) setState(status Status, err error) {
	c.state = SyncState{Status: status, UpdatedAt: time.Now()}
	if err != nil {
		c.state.Error = err.Error()
	}
}

func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
