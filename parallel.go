package kdtree

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NearestResult is one answer from NearestNeighborBatch. OK is false when
// the index is empty.
type NearestResult struct {
	Neighbor
	OK bool
}

// NearestNeighborBatch answers one nearest-neighbor query per row of
// queries using up to workers goroutines against the same index. Results
// are in query order. workers <= 0 means runtime.NumCPU(); 1 runs
// sequentially. The first failing query cancels the rest.
func NearestNeighborBatch(ctx context.Context, idx Index, queries [][]float64, workers int) ([]NearestResult, error) {
	out := make([]NearestResult, len(queries))
	err := runBatch(ctx, len(queries), workers, func(i int) error {
		nb, ok, err := idx.NearestNeighbor(queries[i])
		if err != nil {
			return err
		}
		out[i] = NearestResult{Neighbor: nb, OK: ok}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// KNearestNeighborsBatch answers one k-nearest-neighbor query per row of
// queries; see NearestNeighborBatch for the concurrency contract.
func KNearestNeighborsBatch(ctx context.Context, idx Index, queries [][]float64, k, workers int) ([][]Neighbor, error) {
	out := make([][]Neighbor, len(queries))
	err := runBatch(ctx, len(queries), workers, func(i int) error {
		nbs, err := idx.KNearestNeighbors(queries[i], k)
		if err != nil {
			return err
		}
		out[i] = nbs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RangeSearchBatch answers one range query per box; see
// NearestNeighborBatch for the concurrency contract.
func RangeSearchBatch(ctx context.Context, idx Index, boxes []Box, workers int) ([][]Entry, error) {
	out := make([][]Entry, len(boxes))
	err := runBatch(ctx, len(boxes), workers, func(i int) error {
		hits, err := idx.RangeSearch(boxes[i].Lower, boxes[i].Upper)
		if err != nil {
			return err
		}
		out[i] = hits
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// runBatch calls query for 0..n-1. Each call writes only its own result
// slot, so no synchronization is needed beyond the group wait.
func runBatch(ctx context.Context, n, workers int, query func(i int) error) error {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	if workers == 1 || n <= 1 {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := query(i); err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := query(i); err != nil {
				return fmt.Errorf("query %d: %w", i, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
