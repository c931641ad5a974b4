// internal/recorder/runner.go
package recorder

import (
	"context"
	"time"
)

// Run starts the ticker loop and emits Result on the provided channel.
// One goroutine per buffer. No overlap. No retries.
func (r *Recorder[T]) Run(ctx context.Context, out chan<- Result[T]) {
	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res := r.RecordOnce()
			select {
			case out <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}
