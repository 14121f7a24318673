package inject

import (
	"reflect"

	"go.uber.org/zap"
)

// Registry owns the class-scoped cells, one per (declaring type, name).
//
// It is mutated only by declarations and Reset, which are startup or test
// setup operations; reads go straight to the cells.
type Registry struct {
	cells map[classKey]classCell
}

type classKey struct {
	class reflect.Type
	name  string
}

type classCell struct {
	cell   any // lazy[T]
	reset  func()
	synced bool
}

var defaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{cells: map[classKey]classCell{}}
}

// DefaultRegistry returns the process-wide registry used when no WithRegistry
// option is given.
func DefaultRegistry() *Registry { return defaultRegistry }

// Len returns the number of declared class-scoped cells.
func (r *Registry) Len() int { return len(r.cells) }

// IsDeclared reports whether name was declared on class.
func (r *Registry) IsDeclared(class reflect.Type, name string) bool {
	_, ok := r.cells[classKey{class: class, name: name}]
	return ok
}

// Reset unsets every cell in the registry. Declarations stay in place.
func (r *Registry) Reset() {
	for _, c := range r.cells {
		c.reset()
	}
	logger().Debug("inject: registry reset", zap.Int("cells", len(r.cells)))
}

// claim returns the cell for key after unsetting it, and whether key was
// already declared. A cell of another value type or sync mode is replaced.
func claim[T any](r *Registry, key classKey, synced bool) (lazy[T], bool) {
	existing, declared := r.cells[key]
	if declared {
		existing.reset()
		if cell, ok := existing.cell.(lazy[T]); ok && existing.synced == synced {
			return cell, true
		}
	}
	cell := newLazy[T](synced)
	r.cells[key] = classCell{cell: cell, reset: cell.Reset, synced: synced}
	return cell, declared
}

// ClassDep is the accessor pair of a class-scoped dependency.
type ClassDep[O, T any] struct {
	name    string
	class   reflect.Type
	provide Provider[O, T]
	cell    lazy[T]
}

// DeclareClass declares a dependency memoized once for the declaring type O.
//
// Every value passed as O shares the cell, so declaring on an interface type
// shares it across all implementers. If name is already declared on O in the
// registry, the cached value is discarded and the next read runs provide again.
// Handles from earlier declarations keep pointing at the same cell.
func DeclareClass[O, T any](name string, provide Provider[O, T], opts ...Option) *ClassDep[O, T] {
	o := buildOptions(opts)
	key := classKey{class: reflect.TypeFor[O](), name: name}

	cell, redeclared := claim[T](o.registry, key, o.synced)

	logger().Debug("inject: declared class dependency",
		zap.String("class", key.class.String()),
		zap.String("name", name),
		zap.Bool("reset", redeclared),
		zap.Bool("sync", o.synced),
	)

	return &ClassDep[O, T]{
		name:    name,
		class:   key.class,
		provide: provide,
		cell:    cell,
	}
}

// Name returns the dependency name.
func (d *ClassDep[O, T]) Name() string { return d.name }

// Class returns the declaring type.
func (d *ClassDep[O, T]) Class() reflect.Type { return d.class }

// Get returns the shared value, running the default provider with owner if
// the cell is unset.
//
// Provider errors are returned unmodified and leave the cell unset.
func (d *ClassDep[O, T]) Get(owner O) (T, error) {
	return d.cell.GetOrCompute(func() (T, error) {
		return runProvider(d.provide, "class", d.name, owner)
	})
}

// MustGet is Get that panics on error.
func (d *ClassDep[O, T]) MustGet(owner O) T {
	v, err := d.Get(owner)
	if err != nil {
		panic(err)
	}
	return v
}

// Set stores v in the shared cell. The owner only selects the accessor; the
// value is visible through every value of the declaring type.
func (d *ClassDep[O, T]) Set(_ O, v T) {
	d.cell.Store(v)
}

// IsSet reports whether the shared cell holds a value.
func (d *ClassDep[O, T]) IsSet() bool { return d.cell.IsSet() }
