// internal/recorder/counter.go
package recorder

import "fmt"

// Loader reads back the stored value.
type Loader interface {
	Get(v *uint32) (bool, error)
}

// Counter is a Source that resumes from the stored value and adds step on
// every sample, e.g. an hour meter. A sample only becomes the count once
// it has been acked.
type Counter struct {
	value   uint32
	pending uint32
	step    uint32
}

// NewCounter loads the last stored count from l. l must already be initialized.
func NewCounter(l Loader, step uint32) (*Counter, error) {
	c := &Counter{step: step}

	// an empty buffer leaves value at zero
	if _, err := l.Get(&c.value); err != nil {
		return nil, fmt.Errorf("recorder: load counter: %w", err)
	}
	c.pending = c.value
	return c, nil
}

// Value returns the last stored count.
func (c *Counter) Value() uint32 { return c.value }

func (c *Counter) Sample() (uint32, error) {
	c.pending = c.value + c.step
	return c.pending, nil
}

func (c *Counter) Ack() { c.value = c.pending }
