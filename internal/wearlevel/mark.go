// internal/wearlevel/mark.go
package wearlevel

const (
	// markFree is the status of a free slot.
	markFree byte = 0xFF

	// markSeed stands in for the previous mark when the buffer is empty,
	// and replaces any rotation result that would collide with markFree.
	markSeed byte = 0xFE
)

// nextMark rotates a status byte: shift left, set bit 0, never 0xFF.
func nextMark(prev byte) byte {
	m := prev<<1 | 1
	if m == markFree {
		m = markSeed
	}
	return m
}
