// Package wearlevel keeps one fixed-size value in a range of byte-addressable
// storage with limited write endurance, such as EEPROM.
//
// The range is split into equal slots, each a status byte followed by the
// payload. A status of 0xFF marks a free slot; anything else marks the slot
// holding the current value. Every Put moves the value to the next slot in
// circular order, so consecutive updates never rewrite the same cells.
//
// Layout:
//
//	start                                                       end
//	│ st │ payload ... │ st │ payload ... │ ... │ st │ payload ... │
//	└──── slot 0 ──────┴──── slot 1 ──────┴ ... ┴──── slot N-1 ────┘
//
// Updates are make-before-break: the new payload, then the new status byte,
// then the old slot's status is erased. Power loss between the last two steps
// leaves two adjacent occupied slots, which Initialize resolves in favour of
// the newer one. Any other multi-slot state is corruption and the buffer is
// formatted.
//
// A Buffer is not safe for concurrent use. Buffers sharing a device must own
// disjoint address ranges.
package wearlevel
