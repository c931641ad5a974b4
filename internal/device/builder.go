// internal/device/builder.go
package device

import (
	"fmt"
	"time"

	cfg "github.com/tamzrod/eeprom-wearlevel/internal/config"
	dmodbus "github.com/tamzrod/eeprom-wearlevel/internal/device/modbus"
	dpebble "github.com/tamzrod/eeprom-wearlevel/internal/device/pebble"
)

// Build constructs the device described by dc and sizes it to capacity.
// The returned closer releases the backend; it is never nil on success.
func Build(dc cfg.DeviceConfig, capacity int) (Device, func() error, error) {
	var (
		d       Device
		closeFn func() error
	)

	switch dc.Kind {
	case cfg.KindMemory:
		d = NewMemory(0)
		closeFn = func() error { return nil }

	case cfg.KindPebble:
		p, err := dpebble.Open(dc.Path)
		if err != nil {
			return nil, nil, err
		}
		d, closeFn = p, p.Close

	case cfg.KindModbus:
		m, err := dmodbus.New(dmodbus.Config{
			Endpoint: dc.Endpoint,
			UnitID:   dc.UnitID,
			Timeout:  time.Duration(dc.TimeoutMs) * time.Millisecond,
		})
		if err != nil {
			return nil, nil, err
		}
		d, closeFn = m, m.Close

	default:
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownKind, dc.Kind)
	}

	if err := Begin(d, capacity); err != nil {
		_ = closeFn()
		return nil, nil, fmt.Errorf("device: begin(%d): %w", capacity, err)
	}

	return d, closeFn, nil
}
