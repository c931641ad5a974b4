// internal/device/device.go
package device

// Device is the byte-addressable storage the wear-level buffers live on.
// Implementations may apply write-if-different semantics.
type Device interface {
	Read(addr int) (byte, error)
	Write(addr int, v byte) error
}

// Committer is implemented by devices that batch writes and need an
// explicit flush before they are durable.
type Committer interface {
	Commit() error
}

// Beginner is implemented by devices that must be sized once before use.
type Beginner interface {
	Begin(capacity int) error
}

// Commit flushes d if it batches writes. No-op otherwise.
func Commit(d Device) error {
	if c, ok := d.(Committer); ok {
		return c.Commit()
	}
	return nil
}

// Begin performs the one-time sizing of d if it needs one.
// capacity is computed by the caller from every buffer sharing the device.
func Begin(d Device, capacity int) error {
	if b, ok := d.(Beginner); ok {
		return b.Begin(capacity)
	}
	return nil
}
