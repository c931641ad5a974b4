// internal/recorder/types.go
package recorder

import "time"

// Store is the buffer surface the recorder writes to.
type Store[T any] interface {
	Put(v T) error
	Current() int
}

// Source produces the next value to persist.
type Source[T any] interface {
	Sample() (T, error)
}

// Acker is implemented by sources that must learn whether the sampled
// value was stored. Ack is called only after a successful put.
type Acker interface {
	Ack()
}

// Result is the outcome of one record cycle.
type Result[T any] struct {
	Name string
	At   time.Time

	// Address is the slot that holds the value after the cycle.
	Address int

	// Value is what was put; zero if the sample failed.
	Value T

	Err error // non-nil means the cycle failed
}
