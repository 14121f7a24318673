// Package interject declares lazily-computed, overridable dependencies on Go types.
//
// A dependency is read through a getter that computes a default on first use
// and caches it; a setter overrides the value at any time, which is how tests
// substitute stubs.
//
// This is not a container: there is no graph resolution, no constructor
// injection and no lifecycle beyond lazy-once-then-cached.
//
// Package interject See subpackages:
//   - inject: the library. Instance-scoped dependencies are cached per value,
//     class-scoped ones once per declaring type and reset by redeclaration.
//   - cmd/injectgen: generates Name()/SetName() accessors from a JSON or YAML spec
//   - examples/notify: runnable example built on generated accessors
package interject
