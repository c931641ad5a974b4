// internal/config/normalize.go
package config

// Default values applied by Normalize.
const (
	DefaultTimeoutMs = 1000
	DefaultUnitID    = 1
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Device

	if d.Kind == KindModbus {
		if d.TimeoutMs <= 0 {
			d.TimeoutMs = DefaultTimeoutMs
		}
		if d.UnitID == 0 {
			d.UnitID = DefaultUnitID
		}
	}

	// Explicit capacity was already checked against the buffers.
	if d.Capacity == 0 {
		d.Capacity = RequiredCapacity(cfg.Buffers)
	}
}
