// Package workers runs the background jobs of the service next to the HTTP
// server. Every job implements Worker and stops when its context is
// cancelled.
package workers

import "context"

// Worker is a long-running background job.
//
// Run blocks until ctx is cancelled or the job fails. Returning nil on
// cancellation is the normal way to stop.
//
// Example implementation:
//
//	type ticker struct{ every time.Duration }
//
//	func (t *ticker) Run(ctx context.Context) error {
//	    tick := time.NewTicker(t.every)
//	    defer tick.Stop()
//	    for {
//	        select {
//	        case <-ctx.Done():
//	            return nil
//	        case <-tick.C:
//	            // do work
//	        }
//	    }
//	}
type Worker interface {
	Run(ctx context.Context) error
}
