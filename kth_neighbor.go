package quadtree

import "context"

// KthNeighborDistances returns, for every indexed point, the squared distance
// to its k-th nearest other indexed point. It queries k+1 neighbors per point
// (the +1 accounts for the point itself) through QueryBatch.
//
// k is clamped to NumPoints()-1, so a single point tree yields [0]. Points
// inside stopped nodes cannot be found as neighbors; if fewer than k other
// points come back, the farthest one returned is used.
func (t *Tree) KthNeighborDistances(ctx context.Context, k int, eps float64) ([]float64, error) {
	if err := t.checkArgs(k, eps); err != nil {
		return nil, err
	}

	n := len(t.points)
	out := make([]float64, n)
	k = min(k, n-1)
	if k == 0 {
		return out, nil
	}

	nn, err := t.QueryBatch(ctx, t.points, k+1, eps)
	if err != nil {
		return nil, err
	}

	for i, neighbors := range nn {
		count := 0
		for _, nb := range neighbors {
			if nb.Index == i {
				continue // self
			}
			count++
			if count == k {
				out[i] = nb.SqDist
				break
			}
		}
		if count < k && len(neighbors) > 0 {
			out[i] = neighbors[len(neighbors)-1].SqDist
		}
	}
	return out, nil
}
