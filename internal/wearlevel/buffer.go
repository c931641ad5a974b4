// internal/wearlevel/buffer.go
package wearlevel

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tamzrod/eeprom-wearlevel/internal/device"
)

// Buffer is a circular log of slots holding a single logical value.
type Buffer struct {
	dev device.Device
	log *slog.Logger

	payloadSize int
	slotSize    int
	slotCount   int
	start       int
	end         int

	// current is the address of the slot with the latest value; 0 = empty.
	current int

	// Cleanup left over by a failed operation, finished before the next Put:
	// stale is an occupied slot whose erase did not complete (0 = none),
	// unformatted is set while a FastFormat has not completed.
	stale       int
	unformatted bool
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithLogger sets the logger used for recovery events.
func WithLogger(l *slog.Logger) Option {
	return func(b *Buffer) {
		if l != nil {
			b.log = l
		}
	}
}

// New computes the layout of a buffer of slotCount slots, each holding a
// payloadSize-byte value, starting at start. No device I/O is performed;
// call Initialize once the device is ready.
func New(dev device.Device, payloadSize, slotCount, start int, opts ...Option) (*Buffer, error) {
	if dev == nil {
		return nil, ErrNoDevice
	}
	if payloadSize < 1 {
		return nil, fmt.Errorf("%w: payload size %d", ErrInvalidLayout, payloadSize)
	}
	if slotCount < 1 {
		return nil, fmt.Errorf("%w: slot count %d", ErrInvalidLayout, slotCount)
	}
	// address 0 is the empty sentinel
	if start <= 0 {
		return nil, fmt.Errorf("%w: start address %d must be > 0", ErrInvalidLayout, start)
	}

	b := &Buffer{
		dev:         dev,
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		payloadSize: payloadSize,
		slotSize:    payloadSize + 1,
		slotCount:   slotCount,
		start:       start,
	}
	b.end = start + slotCount*b.slotSize

	for _, opt := range opts {
		opt(b)
	}
	b.log = b.log.With("component", "wearlevel", "start", start, "end", b.end)

	return b, nil
}

func (b *Buffer) Start() int { return b.start }
func (b *Buffer) End() int { return b.end }
func (b *Buffer) SlotSize() int { return b.slotSize }
func (b *Buffer) SlotCount() int { return b.slotCount }
func (b *Buffer) PayloadSize() int { return b.payloadSize }

// Current returns the address of the slot holding the latest value,
// or 0 if the buffer is empty.
func (b *Buffer) Current() int { return b.current }

// FastFormat marks every slot free. Payload bytes are left as they are.
func (b *Buffer) FastFormat() error {
	// Whatever happens below, the old current slot can no longer be trusted.
	b.current = 0
	b.stale = 0
	b.unformatted = true

	for addr := b.start; addr < b.end; addr += b.slotSize {
		if err := b.dev.Write(addr, markFree); err != nil {
			return fmt.Errorf("wearlevel: format slot %#x: %w", addr, err)
		}
	}

	if err := device.Commit(b.dev); err != nil {
		return fmt.Errorf("wearlevel: format commit: %w", err)
	}
	b.unformatted = false
	return nil
}

// settle completes the cleanup of an earlier failed operation. Until it
// succeeds no new slot may be allocated: a leftover occupied slot would not
// be adjacent to the next one and the following scan would format the buffer.
func (b *Buffer) settle() error {
	if b.unformatted {
		return b.FastFormat()
	}
	if b.stale == 0 {
		return nil
	}

	if err := b.dev.Write(b.stale, markFree); err != nil {
		return fmt.Errorf("wearlevel: erase pending slot %#x: %w", b.stale, err)
	}
	if err := device.Commit(b.dev); err != nil {
		return fmt.Errorf("wearlevel: commit pending erase: %w", err)
	}
	b.stale = 0
	return nil
}

// Get copies the current value into out and reports whether there was one.
// out is left untouched when the buffer is empty or a read fails.
func (b *Buffer) Get(out []byte) (bool, error) {
	if b.current == 0 {
		return false, nil
	}
	if len(out) < b.payloadSize {
		return false, fmt.Errorf("%w: out has %d bytes, want %d", ErrPayloadSize, len(out), b.payloadSize)
	}

	tmp := make([]byte, b.payloadSize)
	for i := range tmp {
		v, err := b.dev.Read(b.current + 1 + i)
		if err != nil {
			return false, fmt.Errorf("wearlevel: read slot %#x: %w", b.current, err)
		}
		tmp[i] = v
	}

	copy(out, tmp)
	return true, nil
}

// Put stores payload as the new current value in the next slot.
//
// Write order: new payload, new status, erase old status, commit.
// If the new status byte was written, the new slot is current even when a
// later step fails; the old slot is then erased by the next Put.
func (b *Buffer) Put(payload []byte) error {
	if len(payload) != b.payloadSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrPayloadSize, len(payload), b.payloadSize)
	}
	if err := b.settle(); err != nil {
		return err
	}

	old := b.current
	next := b.start
	prev := markSeed

	if old != 0 {
		next = old + b.slotSize
		if next >= b.end {
			next = b.start
		}

		m, err := b.dev.Read(old)
		if err != nil {
			return fmt.Errorf("wearlevel: read status %#x: %w", old, err)
		}
		prev = m
	}

	mark := nextMark(prev)

	for i, v := range payload {
		if err := b.dev.Write(next+1+i, v); err != nil {
			return fmt.Errorf("wearlevel: write payload %#x: %w", next, err)
		}
	}

	if err := b.dev.Write(next, mark); err != nil {
		return fmt.Errorf("wearlevel: write status %#x: %w", next, err)
	}
	b.current = next

	// A single-slot buffer rewrites in place; there is nothing to erase.
	if old != 0 && old != next {
		b.stale = old
		if err := b.dev.Write(old, markFree); err != nil {
			return fmt.Errorf("wearlevel: erase status %#x: %w", old, err)
		}
	}

	if err := device.Commit(b.dev); err != nil {
		return fmt.Errorf("wearlevel: commit: %w", err)
	}
	b.stale = 0
	return nil
}
