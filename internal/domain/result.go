package domain

// Result carries the outcome of an asynchronous call back to the event loop,
// so the failure path is a value rather than a second callback.
type Result[T any] struct {
	Value T
	Err   error
}

// Await runs fn and wraps its outcome.
func Await[T any](fn func() (T, error)) Result[T] {
	v, err := fn()
	return Result[T]{Value: v, Err: err}
}

// Ok reports whether the call succeeded.
func (r Result[T]) Ok() bool { return r.Err == nil }
