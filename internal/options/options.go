// Package options implements the generic functional-option machinery shared by
// the configurable surfaces of tsframe (collection construction, transpose,
// flat files, the store).
//
// Packages alias Option to their own config type and expose With* constructors:
//
//	type InstantOption = options.Option[*instantConfig]
//
//	func WithChunkSize(size int) InstantOption {
//		return options.New(func(cfg *instantConfig) error { ... })
//	}
package options

// Option configures a target of type T and may reject invalid settings.
type Option[T any] interface {
	apply(T) error
}

// Func adapts a plain function into an Option.
type Func[T any] struct {
	applyFunc func(T) error
}

func (f *Func[T]) apply(target T) error {
	return f.applyFunc(target)
}

// New wraps a fallible configuration function as an Option.
func New[T any](fn func(T) error) *Func[T] {
	return &Func[T]{applyFunc: fn}
}

// NoError wraps an infallible configuration function as an Option.
func NoError[T any](fn func(T)) *Func[T] {
	return &Func[T]{
		applyFunc: func(target T) error {
			fn(target)
			return nil
		},
	}
}

// Apply runs opts against target in order, stopping at the first error.
func Apply[T any](target T, opts ...Option[T]) error {
	for _, opt := range opts {
		if err := opt.apply(target); err != nil {
			return err
		}
	}

	return nil
}
