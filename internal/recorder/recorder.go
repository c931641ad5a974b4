// internal/recorder/recorder.go
package recorder

import (
	"errors"
	"fmt"
	"time"
)

// Config is the minimal runtime config the recorder needs.
type Config struct {
	Name     string
	Interval time.Duration
}

// Recorder is a clock-driven writer: sample, then put.
type Recorder[T any] struct {
	cfg   Config
	store Store[T]
	src   Source[T]
}

// New creates a recorder with immutable config.
func New[T any](cfg Config, store Store[T], src Source[T]) (*Recorder[T], error) {
	if cfg.Name == "" {
		return nil, errors.New("recorder: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("recorder: interval must be > 0")
	}
	if store == nil {
		return nil, errors.New("recorder: store required")
	}
	if src == nil {
		return nil, errors.New("recorder: source required")
	}
	return &Recorder[T]{cfg: cfg, store: store, src: src}, nil
}

// RecordOnce performs exactly one record cycle.
// All-or-nothing: a failed sample writes nothing, a failed put is not acked.
func (r *Recorder[T]) RecordOnce() Result[T] {
	res := Result[T]{
		Name: r.cfg.Name,
		At:   time.Now(),
	}

	v, err := r.src.Sample()
	if err != nil {
		res.Err = fmt.Errorf("recorder %s: sample: %w", r.cfg.Name, err)
		res.Address = r.store.Current()
		return res
	}

	res.Value = v
	if err := r.store.Put(v); err != nil {
		res.Err = fmt.Errorf("recorder %s: put: %w", r.cfg.Name, err)
	} else if a, ok := r.src.(Acker); ok {
		a.Ack()
	}
	res.Address = r.store.Current()
	return res
}
