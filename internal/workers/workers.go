package workers

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Workers starts a set of workers together and waits for all of them. The
// first worker to fail cancels the context of the others.
type Workers struct {
	workers []Worker
	group   *errgroup.Group
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start launches every worker in its own goroutine and returns immediately.
func (w *Workers) Start(ctx context.Context) {
	group, ctx := errgroup.WithContext(ctx)
	for _, worker := range w.workers {
		group.Go(func() error {
			return worker.Run(ctx)
		})
	}
	w.group = group
}

// Wait blocks until every started worker has returned and reports the first
// error. It returns nil when Start was never called.
func (w *Workers) Wait() error {
	if w.group == nil {
		return nil
	}
	return w.group.Wait()
}
