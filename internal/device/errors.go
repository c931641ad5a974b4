// internal/device/errors.go
package device

import "errors"

var (
	// ErrOutOfRange is returned for an address outside the device capacity.
	ErrOutOfRange = errors.New("device: address out of range")

	// ErrUnknownKind is returned by Build for an unsupported device kind.
	ErrUnknownKind = errors.New("device: unknown kind")
)
