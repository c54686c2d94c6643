package quadtree

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// QueryBatch answers QueryKNN for every query using up to Config.Workers
// goroutines. Result i answers queries[i] and is identical to what a
// sequential QueryKNN call returns.
//
// Each worker handles a contiguous range of queries. The first failing query
// cancels the remaining work; ctx is checked between queries.
func (t *Tree) QueryBatch(ctx context.Context, queries [][]float64, k int, eps float64) ([][]Neighbor, error) {
	if err := t.checkArgs(k, eps); err != nil {
		return nil, err
	}

	out := make([][]Neighbor, len(queries))
	if len(queries) == 0 {
		return out, nil
	}

	start := time.Now()
	workers := max(1, min(t.workers, len(queries)))
	perWorker := (len(queries) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := 0; lo < len(queries); lo += perWorker {
		lo := lo // per-iteration copy (pre-Go 1.22 loop semantics)
		hi := min(lo+perWorker, len(queries))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				nn, err := t.QueryKNN(k, queries[i], eps)
				if err != nil {
					return fmt.Errorf("query %d: %w", i, err)
				}
				out[i] = nn
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		t.logger.WarnContext(ctx, "batch query failed",
			"queries", len(queries),
			"k", k,
			"error", err,
		)
		return nil, err
	}

	t.logger.DebugContext(ctx, "batch query completed",
		"queries", len(queries),
		"k", k,
		"workers", workers,
		"duration", time.Since(start),
	)
	return out, nil
}
