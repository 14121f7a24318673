package inject

import "go.uber.org/zap"

// Provider computes the default value of a dependency for owner.
//
// The owner is passed explicitly so the provider can read its other state.
type Provider[O, T any] func(owner O) (T, error)

// Value adapts a provider that cannot fail.
func Value[O, T any](fn func(owner O) T) Provider[O, T] {
	if fn == nil {
		return nil
	}
	return func(owner O) (T, error) { return fn(owner), nil }
}

// Const returns a provider that always yields v.
func Const[O, T any](v T) Provider[O, T] {
	return func(O) (T, error) { return v, nil }
}

// runProvider runs p for owner and returns its error unmodified.
func runProvider[O, T any](p Provider[O, T], scope, name string, owner O) (T, error) {
	if p == nil {
		var zero T
		return zero, NoProviderError{Name: name}
	}
	v, err := p(owner)
	if err != nil {
		logger().Debug("inject: default provider failed",
			zap.String("scope", scope),
			zap.String("name", name),
			zap.Error(err),
		)
		return v, err
	}
	return v, nil
}
