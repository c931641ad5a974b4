// internal/device/pebble/image.go
package pebble

import (
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
)

// erased is what an address reads as before it is ever written.
const erased byte = 0xFF

// Device is a host-side persistent EEPROM image.
//
// One key per byte address. Writes accumulate in an indexed batch that reads
// see immediately; Commit makes them durable. Closing without Commit drops
// pending writes, the same as losing power on a write-back EEPROM emulation.
type Device struct {
	db       *pebble.DB
	batch    *pebble.Batch
	capacity int
}

// Open opens (or creates) an image in dir.
func Open(dir string) (*Device, error) {
	return OpenWithOptions(dir, &pebble.Options{})
}

// OpenWithOptions opens an image with caller-supplied pebble options.
func OpenWithOptions(dir string, opts *pebble.Options) (*Device, error) {
	if dir == "" {
		return nil, errors.New("device pebble: path required")
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("device pebble: open %s: %w", dir, err)
	}

	return &Device{
		db:    db,
		batch: db.NewIndexedBatch(),
	}, nil
}

// Close discards uncommitted writes and closes the image.
func (d *Device) Close() error {
	if err := d.batch.Close(); err != nil {
		_ = d.db.Close()
		return err
	}
	return d.db.Close()
}

// Begin bounds addressing to [0, capacity). Zero leaves it unbounded.
func (d *Device) Begin(capacity int) error {
	if capacity < 0 {
		return errors.New("device pebble: capacity must be >= 0")
	}
	d.capacity = capacity
	return nil
}

func (d *Device) Read(addr int) (byte, error) {
	if err := d.check(addr); err != nil {
		return 0, err
	}

	val, closer, err := d.batch.Get(keyFor(addr))
	if errors.Is(err, pebble.ErrNotFound) {
		return erased, nil
	}
	if err != nil {
		return 0, fmt.Errorf("device pebble: read addr=%d: %w", addr, err)
	}
	defer closer.Close()

	if len(val) != 1 {
		return 0, fmt.Errorf("device pebble: addr=%d holds %d bytes, want 1", addr, len(val))
	}
	return val[0], nil
}

func (d *Device) Write(addr int, v byte) error {
	if err := d.check(addr); err != nil {
		return err
	}
	if err := d.batch.Set(keyFor(addr), []byte{v}, nil); err != nil {
		return fmt.Errorf("device pebble: write addr=%d: %w", addr, err)
	}
	return nil
}

// Commit syncs pending writes to disk as one atomic batch.
func (d *Device) Commit() error {
	if d.batch.Empty() {
		return nil
	}
	if err := d.batch.Commit(pebble.Sync); err != nil {
		return fmt.Errorf("device pebble: commit: %w", err)
	}
	if err := d.batch.Close(); err != nil {
		return fmt.Errorf("device pebble: close batch: %w", err)
	}
	d.batch = d.db.NewIndexedBatch()
	return nil
}

// Pending reports the number of uncommitted writes.
func (d *Device) Pending() uint32 {
	return d.batch.Count()
}

func (d *Device) check(addr int) error {
	if addr < 0 || (d.capacity > 0 && addr >= d.capacity) {
		return fmt.Errorf("device pebble: address %d out of range (capacity %d)", addr, d.capacity)
	}
	return nil
}

// ---- helpers ----

func keyFor(addr int) []byte {
	return []byte(fmt.Sprintf("eeprom/%010d", addr))
}
