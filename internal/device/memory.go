// internal/device/memory.go
package device

import (
	"errors"
	"fmt"
	"sync"
)

// Erased is the value of a cell that was never written.
const Erased byte = 0xFF

// Memory is an in-memory EEPROM image.
// Cells start erased. A write only touches a cell when the value differs,
// and every physical write is counted per cell.
type Memory struct {
	mu      sync.Mutex
	cells   []byte
	wear    []uint32
	commits int
}

// NewMemory returns an erased image of the given size.
func NewMemory(capacity int) *Memory {
	m := &Memory{}
	m.grow(capacity)
	return m
}

// Begin grows the image to capacity. It never shrinks.
func (m *Memory) Begin(capacity int) error {
	if capacity < 0 {
		return errors.New("device memory: capacity must be >= 0")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grow(capacity)
	return nil
}

func (m *Memory) grow(capacity int) {
	for len(m.cells) < capacity {
		m.cells = append(m.cells, Erased)
		m.wear = append(m.wear, 0)
	}
}

func (m *Memory) Read(addr int) (byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if addr < 0 || addr >= len(m.cells) {
		return 0, fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, addr, len(m.cells))
	}
	return m.cells[addr], nil
}

// Write updates one cell. Writing the value already stored is not counted.
func (m *Memory) Write(addr int, v byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if addr < 0 || addr >= len(m.cells) {
		return fmt.Errorf("%w: %d (size %d)", ErrOutOfRange, addr, len(m.cells))
	}
	if m.cells[addr] == v {
		return nil
	}
	m.cells[addr] = v
	m.wear[addr]++
	return nil
}

func (m *Memory) Commit() error {
	m.mu.Lock()
	m.commits++
	m.mu.Unlock()
	return nil
}

// Size returns the current image size in bytes.
func (m *Memory) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cells)
}

// Commits returns how many times Commit was called.
func (m *Memory) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Wear returns the number of physical writes to addr.
func (m *Memory) Wear(addr int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if addr < 0 || addr >= len(m.wear) {
		return 0
	}
	return m.wear[addr]
}

// MaxWear returns the highest write count in [from, to).
func (m *Memory) MaxWear(from, to int) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if from < 0 {
		from = 0
	}
	if to > len(m.wear) {
		to = len(m.wear)
	}
	var top uint32
	for a := from; a < to; a++ {
		if m.wear[a] > top {
			top = m.wear[a]
		}
	}
	return top
}
