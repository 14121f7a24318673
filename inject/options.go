package inject

// Option configures a declaration.
type Option func(*options)

type options struct {
	synced   bool
	registry *Registry
}

func buildOptions(opts []Option) options {
	o := options{registry: defaultRegistry}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if o.registry == nil {
		o.registry = defaultRegistry
	}
	return o
}

// WithSync backs the dependency with a SyncCell so concurrent first reads run
// the provider once.
func WithSync() Option {
	return func(o *options) { o.synced = true }
}

// WithRegistry stores a class-scoped dependency in r instead of the default
// registry. Instance-scoped declarations ignore it.
func WithRegistry(r *Registry) Option {
	return func(o *options) { o.registry = r }
}
