// internal/wearlevel/scan.go
package wearlevel

import (
	"fmt"

	"github.com/tamzrod/eeprom-wearlevel/internal/device"
)

// Outcome is the result of the initialization scan.
type Outcome uint8

const (
	// OutcomeEmpty: no occupied slot.
	OutcomeEmpty Outcome = iota
	// OutcomeSingle: exactly one occupied slot, the steady state.
	OutcomeSingle
	// OutcomeRecoveredAdjacent: an interrupted put left the new slot right
	// after the old one. The old one was erased.
	OutcomeRecoveredAdjacent
	// OutcomeRecoveredWrap: an interrupted put wrapped to the first slot while
	// the old value sat in the last one. The last slot was erased.
	OutcomeRecoveredWrap
	// OutcomeCorrupt: more than two occupied slots, or two that no single
	// interrupted put can produce. The buffer was formatted.
	OutcomeCorrupt
)

func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "EMPTY"
	case OutcomeSingle:
		return "SINGLE"
	case OutcomeRecoveredAdjacent:
		return "RECOVERED_ADJACENT"
	case OutcomeRecoveredWrap:
		return "RECOVERED_WRAP"
	case OutcomeCorrupt:
		return "CORRUPT"
	default:
		return "UNKNOWN"
	}
}

// occupancy is what a scan saw, in ascending address order.
type occupancy struct {
	addrs [2]int
	marks [2]byte
	n     int // 3 means "more than two"; the scan stops there
}

func (b *Buffer) scan() (occupancy, error) {
	var occ occupancy

	for addr := b.start; addr < b.end; addr += b.slotSize {
		m, err := b.dev.Read(addr)
		if err != nil {
			return occupancy{}, fmt.Errorf("wearlevel: scan status %#x: %w", addr, err)
		}
		if m == markFree {
			continue
		}
		if occ.n == 2 {
			occ.n = 3
			return occ, nil
		}
		occ.addrs[occ.n] = addr
		occ.marks[occ.n] = m
		occ.n++
	}

	return occ, nil
}

// resolve maps a scan to an outcome, the slot to keep and the slot to erase
// (0 when there is none).
func (b *Buffer) resolve(occ occupancy) (Outcome, int, int) {
	switch occ.n {
	case 0:
		return OutcomeEmpty, 0, 0

	case 1:
		return OutcomeSingle, occ.addrs[0], 0

	case 2:
		a0, a1 := occ.addrs[0], occ.addrs[1]

		adjacent := a1 == a0+b.slotSize
		wrap := a0 == b.start && a1 == b.end-b.slotSize

		switch {
		case adjacent && wrap:
			// Two-slot buffer: both readings fit, the rotated marks decide.
			if nextMark(occ.marks[1]) == occ.marks[0] && nextMark(occ.marks[0]) != occ.marks[1] {
				return OutcomeRecoveredWrap, a0, a1
			}
			return OutcomeRecoveredAdjacent, a1, a0
		case adjacent:
			return OutcomeRecoveredAdjacent, a1, a0
		case wrap:
			return OutcomeRecoveredWrap, a0, a1
		}
		return OutcomeCorrupt, 0, 0

	default:
		return OutcomeCorrupt, 0, 0
	}
}

// Initialize scans the slots and restores the current value. It must be
// called once, after the device is ready and before Get or Put.
//
// An interrupted put is completed by erasing the stale slot. Corruption is
// cleared by formatting; it is reported through the outcome, not an error.
func (b *Buffer) Initialize() (Outcome, error) {
	b.current = 0
	b.stale = 0
	b.unformatted = false

	occ, err := b.scan()
	if err != nil {
		return OutcomeEmpty, err
	}

	outcome, keep, stale := b.resolve(occ)

	switch outcome {
	case OutcomeEmpty:
		b.current = 0

	case OutcomeSingle:
		b.current = keep

	case OutcomeRecoveredAdjacent, OutcomeRecoveredWrap:
		b.current = keep
		b.log.Info("recovered interrupted update",
			"outcome", outcome,
			"current", keep,
			"erased", stale,
		)

		b.stale = stale
		if err := b.dev.Write(stale, markFree); err != nil {
			return outcome, fmt.Errorf("wearlevel: erase stale slot %#x: %w", stale, err)
		}
		if err := device.Commit(b.dev); err != nil {
			return outcome, fmt.Errorf("wearlevel: commit recovery: %w", err)
		}
		b.stale = 0

	case OutcomeCorrupt:
		b.log.Warn("corrupt slot state, formatting",
			"occupied", occ.n,
		)

		if err := b.FastFormat(); err != nil {
			return outcome, err
		}

	default:
		return outcome, fmt.Errorf("wearlevel: unhandled scan outcome %d", outcome)
	}

	return outcome, nil
}
