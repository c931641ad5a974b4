// internal/device/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
)

// maxRegisters is the size of the holding register address space.
const maxRegisters = 1 << 16

// Device is an EEPROM exposed by a Modbus TCP server.
// Each byte lives in the low byte of one holding register (FC3 read, FC6 write).
// Requests are serialized; buffers sharing one endpoint share one connection.
type Device struct {
	mu       sync.Mutex
	handler  *modbus.TCPClientHandler
	client   modbus.Client
	capacity int
}

// Config is minimal transport config.
type Config struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// New connects to the endpoint.
func New(cfg Config) (*Device, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("device modbus: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("device modbus: connect %s: %w", cfg.Endpoint, err)
	}

	return &Device{
		handler:  h,
		client:   modbus.NewClient(h),
		capacity: maxRegisters,
	}, nil
}

// newWithClient wraps an existing client. Used by tests.
func newWithClient(c modbus.Client) *Device {
	return &Device{client: c, capacity: maxRegisters}
}

// Close closes the TCP connection.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.handler == nil {
		return nil
	}
	return d.handler.Close()
}

// Begin limits addressing to the first capacity registers.
func (d *Device) Begin(capacity int) error {
	if capacity < 0 || capacity > maxRegisters {
		return fmt.Errorf("device modbus: capacity %d outside register space", capacity)
	}
	d.mu.Lock()
	d.capacity = capacity
	d.mu.Unlock()
	return nil
}

func (d *Device) Read(addr int) (byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check(addr); err != nil {
		return 0, err
	}

	res, err := d.client.ReadHoldingRegisters(uint16(addr), 1)
	if err != nil {
		return 0, fmt.Errorf("device modbus: read addr=%d: %w", addr, err)
	}
	// register big-endian: res[0] high, res[1] low
	if len(res) < 2 {
		return 0, fmt.Errorf("device modbus: short read at addr=%d: %d bytes", addr, len(res))
	}
	return res[1], nil
}

func (d *Device) Write(addr int, v byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.check(addr); err != nil {
		return err
	}

	if _, err := d.client.WriteSingleRegister(uint16(addr), uint16(v)); err != nil {
		return fmt.Errorf("device modbus: write addr=%d: %w", addr, err)
	}
	return nil
}

func (d *Device) check(addr int) error {
	if addr < 0 || addr >= d.capacity {
		return fmt.Errorf("device modbus: address %d out of range (capacity %d)", addr, d.capacity)
	}
	return nil
}
