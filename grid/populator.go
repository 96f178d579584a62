package grid

import "errors"

// ErrExhausted is returned by a Populator that has no more symbols.
var ErrExhausted = errors.New("populator exhausted")

// Populator supplies the symbols PopulatedBy places, one per call.
// It gives no indication of how many symbols remain; running out is
// reported through the returned error.
type Populator[T any] interface {
	Next() (T, error)
}

// PopulatorFunc adapts an ordinary function to the Populator interface.
type PopulatorFunc[T any] func() (T, error)

// Next calls f().
func (f PopulatorFunc[T]) Next() (T, error) {
	return f()
}
