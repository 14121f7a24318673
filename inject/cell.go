package inject

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// lazy is the storage unit shared by both scopes.
type lazy[T any] interface {
	Load() (T, bool)
	Store(v T)
	Reset()
	IsSet() bool
	GetOrCompute(compute func() (T, error)) (T, error)
}

var (
	_ lazy[int] = (*Cell[int])(nil)
	_ lazy[int] = (*SyncCell[int])(nil)
)

func newLazy[T any](synced bool) lazy[T] {
	if synced {
		return &SyncCell[T]{}
	}
	return &Cell[T]{}
}

// Cell holds either nothing or exactly one value of T.
//
// The zero value is an unset cell. Cell does no locking; see SyncCell.
type Cell[T any] struct {
	value T
	set   bool
}

// Load returns the stored value and whether one is set.
func (c *Cell[T]) Load() (T, bool) { return c.value, c.set }

// Store sets the cell to v.
func (c *Cell[T]) Store(v T) { c.value, c.set = v, true }

// Reset returns the cell to the unset state.
func (c *Cell[T]) Reset() {
	var zero T
	c.value, c.set = zero, false
}

// IsSet reports whether the cell holds a value.
func (c *Cell[T]) IsSet() bool { return c.set }

// GetOrCompute returns the stored value, or runs compute once and stores its result.
//
// The store happens after compute returns, so a Store made by compute itself is
// overwritten. If compute fails or panics nothing is stored and the next call
// runs compute again.
func (c *Cell[T]) GetOrCompute(compute func() (T, error)) (T, error) {
	if c.set {
		return c.value, nil
	}
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Store(v)
	return v, nil
}

// SyncCell is a Cell safe for concurrent use.
//
// Concurrent first reads share one compute call. compute must not read the
// same SyncCell; that call waits on itself.
type SyncCell[T any] struct {
	mu    sync.RWMutex
	value T
	set   bool

	flight singleflight.Group
}

// Load returns the stored value and whether one is set.
func (c *SyncCell[T]) Load() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, c.set
}

// Store sets the cell to v.
func (c *SyncCell[T]) Store(v T) {
	c.mu.Lock()
	c.value, c.set = v, true
	c.mu.Unlock()
}

// Reset returns the cell to the unset state.
func (c *SyncCell[T]) Reset() {
	var zero T
	c.mu.Lock()
	c.value, c.set = zero, false
	c.mu.Unlock()
}

// IsSet reports whether the cell holds a value.
func (c *SyncCell[T]) IsSet() bool {
	_, ok := c.Load()
	return ok
}

// GetOrCompute behaves like Cell.GetOrCompute, collapsing concurrent callers
// that find the cell unset into a single compute call.
func (c *SyncCell[T]) GetOrCompute(compute func() (T, error)) (T, error) {
	if v, ok := c.Load(); ok {
		return v, nil
	}

	res, err, _ := c.flight.Do("", func() (any, error) {
		// a Store may have landed between Load and Do
		if v, ok := c.Load(); ok {
			return v, nil
		}
		v, err := compute()
		if err != nil {
			return nil, err
		}
		c.Store(v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	// res is a nil interface when T is an interface type holding nil.
	v, _ := res.(T)
	return v, nil
}
