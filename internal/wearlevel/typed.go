// internal/wearlevel/typed.go
package wearlevel

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tamzrod/eeprom-wearlevel/internal/device"
)

// Typed stores a fixed-size Go value in a Buffer.
// Values are encoded little-endian, field by field, without padding.
type Typed[T any] struct {
	buf  *Buffer
	size int
}

// NewTyped builds a buffer whose payload is the binary size of T.
func NewTyped[T any](dev device.Device, slotCount, start int, opts ...Option) (*Typed[T], error) {
	size, err := typedSize[T]()
	if err != nil {
		return nil, err
	}

	buf, err := New(dev, size, slotCount, start, opts...)
	if err != nil {
		return nil, err
	}
	return Wrap[T](buf)
}

// Wrap stores T in an existing buffer. The buffer's payload size must be
// exactly the binary size of T.
func Wrap[T any](buf *Buffer) (*Typed[T], error) {
	size, err := typedSize[T]()
	if err != nil {
		return nil, err
	}
	if buf.PayloadSize() != size {
		var zero T
		return nil, fmt.Errorf("%w: %T needs %d bytes, buffer holds %d", ErrPayloadSize, zero, size, buf.PayloadSize())
	}
	return &Typed[T]{buf: buf, size: size}, nil
}

func typedSize[T any]() (int, error) {
	var zero T

	size := binary.Size(zero)
	if size <= 0 {
		return 0, fmt.Errorf("%w: %T", ErrNotFixedSize, zero)
	}
	return size, nil
}

// Buffer returns the underlying buffer.
func (t *Typed[T]) Buffer() *Buffer { return t.buf }

func (t *Typed[T]) Initialize() (Outcome, error) { return t.buf.Initialize() }

func (t *Typed[T]) FastFormat() error { return t.buf.FastFormat() }

func (t *Typed[T]) Current() int { return t.buf.Current() }

// Get decodes the current value into v. v is untouched when there is none.
func (t *Typed[T]) Get(v *T) (bool, error) {
	raw := make([]byte, t.size)

	ok, err := t.buf.Get(raw)
	if err != nil || !ok {
		return ok, err
	}

	var out T
	if err := binary.Read(bytes.NewReader(raw), binary.LittleEndian, &out); err != nil {
		return false, fmt.Errorf("wearlevel: decode %T: %w", out, err)
	}
	*v = out
	return true, nil
}

func (t *Typed[T]) Put(v T) error {
	var w bytes.Buffer
	w.Grow(t.size)

	if err := binary.Write(&w, binary.LittleEndian, v); err != nil {
		return fmt.Errorf("wearlevel: encode %T: %w", v, err)
	}
	return t.buf.Put(w.Bytes())
}
