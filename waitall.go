package formrec

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

/*
WaitAll drives several pollers to completion concurrently and returns their
results in the order the pollers were given.

Each poller still checks its own operation strictly sequentially; only the
pollers run concurrently with each other. The first error cancels the
remaining waits.
*/
func WaitAll[T any](ctx context.Context, interval time.Duration, pollers ...*Poller[T]) ([]T, error) {
	results := make([]T, len(pollers))
	g, ctx := errgroup.WithContext(ctx)
	for i, p := range pollers {
		i, p := i, p
		g.Go(func() error {
			result, err := p.PollUntilDone(ctx, interval)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
