// internal/controller/runner.go
package controller

import (
	"context"
	"time"
)

// Run ticks at interval until ctx is done.
// One goroutine, no overlapping ticks. Observers run after each tick, in order.
func (c *Controller) Run(ctx context.Context, interval time.Duration, observers ...func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
			snap := c.Snapshot()
			for _, fn := range observers {
				fn(snap)
			}
		}
	}
}
