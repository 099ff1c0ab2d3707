// Package worker runs a fixed set of independent jobs across a bounded
// pool of goroutines.
package worker

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Run executes job(i) for every i in [0, n) using at most workers
// goroutines. Jobs are claimed from a shared counter, so completion order
// is arbitrary; callers that need ordered output index into a shared
// results slice by job number. The first job error cancels the context the
// remaining jobs see, and Run returns that error.
func Run(ctx context.Context, n, workers int, job func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return ctx.Err()
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	g, ctx := errgroup.WithContext(ctx)
	var next atomic.Int64
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return nil
				}
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := job(ctx, i); err != nil {
					return err
				}
			}
		})
	}
	return g.Wait()
}
