package inject

import "sync"

// Owner is implemented by pointers to structs that embed Cells.
type Owner interface {
	injectCells() *Cells
}

// Cells stores the instance-scoped dependencies of one owner, keyed by name.
//
// Embed it by value; the zero value is ready to use. Cells must not be copied
// after first use.
type Cells struct {
	mu    sync.Mutex
	cells map[string]any
}

func (c *Cells) injectCells() *Cells { return c }

// lookupCell returns the cell stored under name, creating it if the slot is
// empty or holds a cell of another kind. The table lock is held for the map
// access only; the cell is used after it is released.
func lookupCell[T any](c *Cells, name string, synced bool) lazy[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cells == nil {
		c.cells = make(map[string]any)
	}
	if existing, ok := c.cells[name].(lazy[T]); ok && isSynced(existing) == synced {
		return existing
	}
	cell := newLazy[T](synced)
	c.cells[name] = cell
	return cell
}

func isSynced[T any](l lazy[T]) bool {
	_, ok := l.(*SyncCell[T])
	return ok
}

// InstanceDep is the accessor pair of an instance-scoped dependency.
type InstanceDep[O Owner, T any] struct {
	name    string
	provide Provider[O, T]
	synced  bool
}

// DeclareInstance declares a dependency memoized separately on every owner.
//
// Declaring the same name again only yields a new accessor pair; values
// already cached on owners are kept. A nil provider makes the dependency
// set-only: reading it unset returns NoProviderError.
func DeclareInstance[O Owner, T any](name string, provide Provider[O, T], opts ...Option) *InstanceDep[O, T] {
	o := buildOptions(opts)
	return &InstanceDep[O, T]{name: name, provide: provide, synced: o.synced}
}

// Name returns the dependency name.
func (d *InstanceDep[O, T]) Name() string { return d.name }

func (d *InstanceDep[O, T]) cell(owner O) lazy[T] {
	return lookupCell[T](owner.injectCells(), d.name, d.synced)
}

// Get returns owner's value, running the default provider on first read.
//
// Provider errors are returned unmodified and leave the cell unset.
func (d *InstanceDep[O, T]) Get(owner O) (T, error) {
	return d.cell(owner).GetOrCompute(func() (T, error) {
		return runProvider(d.provide, "instance", d.name, owner)
	})
}

// MustGet is Get that panics on error.
func (d *InstanceDep[O, T]) MustGet(owner O) T {
	v, err := d.Get(owner)
	if err != nil {
		panic(err)
	}
	return v
}

// Set stores v on owner, replacing any cached or future default.
func (d *InstanceDep[O, T]) Set(owner O, v T) {
	d.cell(owner).Store(v)
}

// IsSet reports whether owner holds a value for the dependency.
func (d *InstanceDep[O, T]) IsSet(owner O) bool {
	return d.cell(owner).IsSet()
}
