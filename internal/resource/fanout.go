package resource

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the per-organization fan-out of List calls.
const DefaultConcurrency = 4

// fanOut calls fn once per organization with at most limit calls in flight and
// concatenates the results in the order of orgs, whatever order the calls
// complete in. The first error cancels the remaining calls and is returned.
func fanOut[T any](ctx context.Context, limit int, orgs []string, fn func(context.Context, string) ([]T, error)) ([]T, error) {
	slots := make([][]T, len(orgs))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, org := range orgs {
		g.Go(func() error {
			items, err := fn(gctx, org)
			if err != nil {
				return err
			}
			slots[i] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, slot := range slots {
		total += len(slot)
	}
	out := make([]T, 0, total)
	for _, slot := range slots {
		out = append(out, slot...)
	}
	return out, nil
}
