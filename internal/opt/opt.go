// Package opt provides an explicit present-or-absent wrapper for query results.
//
// Every read operation in the weather store that can legitimately find nothing
// returns an Opt instead of a nil pointer or an empty slice. This keeps the
// distinction between "a valid empty answer" and "nothing matched" visible in
// the type system, and it is the contract the averages service and the wire
// format (an empty JSON object for absent results) both rely on.
package opt

// Opt holds either a value of type T or nothing.
// The zero value is absent.
type Opt[T any] struct {
	value   T
	present bool
}

// Some wraps a value.
func Some[T any](v T) Opt[T] {
	return Opt[T]{value: v, present: true}
}

// None returns an absent Opt.
func None[T any]() Opt[T] {
	return Opt[T]{}
}

// IsSome reports whether a value is present.
func (o Opt[T]) IsSome() bool {
	return o.present
}

// Get returns the wrapped value and whether it is present.
// When absent, the returned value is the zero value of T.
func (o Opt[T]) Get() (T, bool) {
	return o.value, o.present
}

// MustGet returns the wrapped value and panics if absent.
// Intended for tests and for call sites that have already checked IsSome.
func (o Opt[T]) MustGet() T {
	if !o.present {
		panic("opt: MustGet on absent value")
	}
	return o.value
}
