// internal/config/capacity.go
package config

// PageSize is the granularity devices are sized in.
const PageSize = 256

// RequiredCapacity is the device size needed by all buffers: the largest
// end address rounded up to a whole page. Zero when there are no buffers.
func RequiredCapacity(buffers []BufferConfig) int {
	end := 0
	for _, b := range buffers {
		if e := b.End(); e > end {
			end = e
		}
	}
	if end == 0 {
		return 0
	}
	return (end + PageSize - 1) / PageSize * PageSize
}
