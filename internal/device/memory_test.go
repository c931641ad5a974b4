// internal/device/memory_test.go
package device

import (
	"errors"
	"testing"
)

func TestMemory_StartsErased(t *testing.T) {
	m := NewMemory(8)

	for a := 0; a < 8; a++ {
		v, err := m.Read(a)
		if err != nil {
			t.Fatalf("read %d: %v", a, err)
		}
		if v != Erased {
			t.Fatalf("addr %d: got=%#02x want=%#02x", a, v, Erased)
		}
	}
}

func TestMemory_UpdateCountsOnlyChanges(t *testing.T) {
	m := NewMemory(4)

	_ = m.Write(1, 0x10)
	_ = m.Write(1, 0x10)
	_ = m.Write(1, 0x20)
	_ = m.Write(2, Erased)

	if m.Wear(1) != 2 {
		t.Fatalf("wear addr 1: got=%d want=2", m.Wear(1))
	}
	if m.Wear(2) != 0 {
		t.Fatalf("wear addr 2: got=%d want=0", m.Wear(2))
	}
	if m.MaxWear(0, 4) != 2 {
		t.Fatalf("max wear: got=%d want=2", m.MaxWear(0, 4))
	}
	if m.MaxWear(-5, 100) != 2 {
		t.Fatalf("clamped max wear: got=%d want=2", m.MaxWear(-5, 100))
	}
}

func TestMemory_OutOfRange(t *testing.T) {
	m := NewMemory(4)

	if _, err := m.Read(4); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("read: got=%v want=%v", err, ErrOutOfRange)
	}
	if err := m.Write(-1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("write: got=%v want=%v", err, ErrOutOfRange)
	}
	if m.Wear(99) != 0 {
		t.Fatalf("wear out of range should be 0")
	}
}

func TestMemory_BeginGrowsNeverShrinks(t *testing.T) {
	m := NewMemory(4)
	_ = m.Write(3, 0x01)

	if err := Begin(m, 16); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if m.Size() != 16 {
		t.Fatalf("size: got=%d want=16", m.Size())
	}
	if v, _ := m.Read(15); v != Erased {
		t.Fatalf("grown cell: got=%#02x want=%#02x", v, Erased)
	}

	if err := m.Begin(2); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if m.Size() != 16 {
		t.Fatalf("size after smaller begin: got=%d want=16", m.Size())
	}
	if v, _ := m.Read(3); v != 0x01 {
		t.Fatalf("existing cell lost: got=%#02x", v)
	}

	if err := m.Begin(-1); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// plain has neither Commit nor Begin.
type plain struct{ Device }

func TestCommitAndBegin_Optional(t *testing.T) {
	m := NewMemory(1)

	if err := Commit(m); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if m.Commits() != 1 {
		t.Fatalf("commits: got=%d want=1", m.Commits())
	}

	p := plain{m}
	if err := Commit(p); err != nil {
		t.Fatalf("commit on plain device: %v", err)
	}
	if err := Begin(p, 100); err != nil {
		t.Fatalf("begin on plain device: %v", err)
	}
	if m.Commits() != 1 || m.Size() != 1 {
		t.Fatalf("plain wrapper forwarded optional calls")
	}
}
