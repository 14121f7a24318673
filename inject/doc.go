// Package inject declares lazily-computed, overridable dependencies on Go types.
//
// A dependency is a named value with a default provider. Reading it the first
// time runs the provider with the owning value and caches the result; writing
// it stores a value directly, which is how tests substitute stubs.
//
// Two scopes are supported:
//
//   - Instance scope (DeclareInstance): one cell per owner value. The owner
//     struct embeds Cells, which makes its pointer type satisfy Owner.
//
//   - Class scope (DeclareClass): one cell per (declaring type, name) pair in a
//     Registry, shared by every value passed as that type. Declaring on an
//     interface type shares the cell across all implementers; declaring on a
//     narrower type gives that type its own cell. Declaring the same name on
//     the same type again resets the cell, which is the intended way to isolate
//     tests.
//
// Example:
//
//	type Mailer struct {
//		inject.Cells
//		host string
//	}
//
//	var mailerTransport = inject.DeclareInstance("transport",
//		func(m *Mailer) (Transport, error) { return dial(m.host) })
//
//	m := &Mailer{host: "smtp.local"}
//	mailerTransport.Set(m, fakeTransport{}) // stub
//	t := mailerTransport.MustGet(m)
//
// cmd/injectgen generates Name()/SetName() methods around these handles.
//
// Concurrency: cells are unsynchronized unless declared WithSync. Two goroutines
// reading an unset plain cell at the same time may both run the provider and
// race on the store. An owner's table of cells is always locked, so plain and
// WithSync dependencies can share an owner. Declarations are startup configuration and must not run
// concurrently with each other or with reads.
//
// Import
//
//	"github.com/sghaida/interject/inject"
package inject
