// internal/config/config.go
package config

type Config struct {
	Device  DeviceConfig   `yaml:"device"`
	Buffers []BufferConfig `yaml:"buffers"`
}

// ---- DEVICE ----

// Device kinds.
const (
	KindMemory = "memory"
	KindPebble = "pebble"
	KindModbus = "modbus"
)

type DeviceConfig struct {
	Kind string `yaml:"kind"`

	// pebble
	Path string `yaml:"path"`

	// modbus
	Endpoint  string `yaml:"endpoint"`
	UnitID    uint8  `yaml:"unit_id"`
	TimeoutMs int    `yaml:"timeout_ms"`

	// 0 = derived from buffers
	Capacity int `yaml:"capacity"`
}

// ---- BUFFER GEOMETRY ----

type BufferConfig struct {
	Name        string `yaml:"name"`
	Start       int    `yaml:"start"`
	Slots       int    `yaml:"slots"`
	PayloadSize int    `yaml:"payload_size"`
}

// SlotSize is the status byte plus the payload.
func (b BufferConfig) SlotSize() int {
	return b.PayloadSize + 1
}

// End is the first address past the buffer.
func (b BufferConfig) End() int {
	return b.Start + b.Slots*b.SlotSize()
}

// Buffer returns the buffer named name.
func (c *Config) Buffer(name string) (BufferConfig, bool) {
	for _, b := range c.Buffers {
		if b.Name == name {
			return b, true
		}
	}
	return BufferConfig{}, false
}
