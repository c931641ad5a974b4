// internal/wearlevel/errors.go
package wearlevel

import "errors"

var (
	// ErrNoDevice is returned when a buffer is built without a device.
	ErrNoDevice = errors.New("wearlevel: device required")

	// ErrInvalidLayout is returned for a zero start address or an empty geometry.
	ErrInvalidLayout = errors.New("wearlevel: invalid layout")

	// ErrPayloadSize is returned when a payload does not match the slot payload size.
	ErrPayloadSize = errors.New("wearlevel: payload size mismatch")

	// ErrNotFixedSize is returned by NewTyped for types without a fixed binary size.
	ErrNotFixedSize = errors.New("wearlevel: type has no fixed binary size")
)
