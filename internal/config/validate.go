// internal/config/validate.go
package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}

	// ------------------------------------------------------------
	// DEVICE
	// ------------------------------------------------------------

	d := cfg.Device
	switch d.Kind {
	case KindMemory:
	case KindPebble:
		if d.Path == "" {
			return fmt.Errorf("device: kind %q requires path", d.Kind)
		}
	case KindModbus:
		if d.Endpoint == "" {
			return fmt.Errorf("device: kind %q requires endpoint", d.Kind)
		}
		if d.TimeoutMs < 0 {
			return fmt.Errorf("device: timeout_ms must be >= 0, got %d", d.TimeoutMs)
		}
	case "":
		return fmt.Errorf("device: kind required")
	default:
		return fmt.Errorf("device: unknown kind %q", d.Kind)
	}

	if d.Capacity < 0 {
		return fmt.Errorf("device: capacity must be >= 0, got %d", d.Capacity)
	}

	// ------------------------------------------------------------
	// BUFFER GEOMETRY
	// ------------------------------------------------------------

	if len(cfg.Buffers) == 0 {
		return fmt.Errorf("buffers: at least one buffer required")
	}

	names := make(map[string]struct{})

	for _, b := range cfg.Buffers {
		if b.Name == "" {
			return fmt.Errorf("buffer at start=%d: name required", b.Start)
		}
		if _, dup := names[b.Name]; dup {
			return fmt.Errorf("buffer %q: duplicate name", b.Name)
		}
		names[b.Name] = struct{}{}

		// address 0 is the "no data" sentinel
		if b.Start <= 0 {
			return fmt.Errorf("buffer %q: start must be > 0, got %d", b.Name, b.Start)
		}
		if b.Slots <= 0 {
			return fmt.Errorf("buffer %q: slots must be > 0, got %d", b.Name, b.Slots)
		}
		if b.PayloadSize <= 0 {
			return fmt.Errorf("buffer %q: payload_size must be > 0, got %d", b.Name, b.PayloadSize)
		}
	}

	// ------------------------------------------------------------
	// OVERLAP (one device, disjoint ranges)
	// ------------------------------------------------------------

	type span struct {
		start int
		end   int // inclusive
		name  string
	}

	var spans []span

	for _, b := range cfg.Buffers {
		start := b.Start
		end := b.End() - 1

		for _, s := range spans {
			// overlap check (inclusive)
			if !(end < s.start || start > s.end) {
				return fmt.Errorf(
					"buffer overlap: %q range=%d-%d overlaps with %q range=%d-%d",
					b.Name,
					start,
					end,
					s.name,
					s.start,
					s.end,
				)
			}
		}

		spans = append(spans, span{
			start: start,
			end:   end,
			name:  b.Name,
		})
	}

	// ------------------------------------------------------------
	// CAPACITY
	// ------------------------------------------------------------

	if d.Capacity > 0 {
		for _, b := range cfg.Buffers {
			if b.End() > d.Capacity {
				return fmt.Errorf(
					"buffer %q: range ends at %d beyond device capacity %d",
					b.Name,
					b.End(),
					d.Capacity,
				)
			}
		}
	}

	return nil
}
