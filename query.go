package quadtree

import (
	"container/heap"
	"fmt"
	"math"
	"slices"
	"sort"
	"time"
)

// Neighbor is one result of a kNN query.
type Neighbor struct {
	Index  int       // row of the point in the slice the tree was built from
	Point  []float64 // the caller-owned point row
	SqDist float64   // squared Euclidean distance to the query
}

// QueryKNN returns up to k points near query, ascending by squared distance.
//
// The search is best-first over regions ranked by a lower bound on their
// squared distance to query. It stops once the k-th best squared distance
// found so far is <= (1+eps) times the bound of the next region, so every
// result is within a factor (1+eps) of the true k-th nearest squared
// distance. eps = 0 returns the exact k nearest neighbors. Among equal
// distances, the point found later ranks first.
//
// Points inside stopped nodes are never returned. A query with a NaN
// coordinate fails with ErrInvalidQuery.
func (t *Tree) QueryKNN(k int, query []float64, eps float64) ([]Neighbor, error) {
	start := time.Now()
	res, visited, err := t.queryKNN(k, query, eps)
	t.metrics.RecordQuery(k, len(res), visited, time.Since(start), err)
	return res, err
}

func (t *Tree) checkArgs(k int, eps float64) error {
	if k < 1 {
		return ErrInvalidK
	}
	if eps < 0 || math.IsNaN(eps) {
		return ErrInvalidEpsilon
	}
	return nil
}

// queryKNN runs the search and also returns the number of nodes popped.
func (t *Tree) queryKNN(k int, query []float64, eps float64) ([]Neighbor, int, error) {
	if err := t.checkArgs(k, eps); err != nil {
		return nil, 0, err
	}
	if len(query) != t.dims {
		return nil, 0, &DimensionMismatchError{Expected: t.dims, Actual: len(query), Index: -1}
	}
	for d, v := range query {
		if math.IsNaN(v) {
			return nil, 0, fmt.Errorf("%w: dimension %d", ErrInvalidQuery, d)
		}
	}

	res := make([]Neighbor, 0, min(k, len(t.points))+1)
	pq := nodeQueue{{id: t.root}}
	seq := 1
	visited := 0

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(queueItem)
		visited++
		nd := &t.nodes[item.id]

		switch {
		case nd.point >= 0:
			p := t.points[nd.point]
			d := SqDist(query, p)
			// Insert before the first entry that is not strictly closer.
			i := sort.Search(len(res), func(j int) bool { return !(res[j].SqDist < d) })
			res = slices.Insert(res, i, Neighbor{Index: nd.point, Point: p, SqDist: d})
			if len(res) > k {
				res = res[:k]
			}

		case nd.slot >= 0:
			kth := math.Inf(1)
			if len(res) >= k {
				kth = res[len(res)-1].SqDist
			}
			// Nothing left in the queue can improve on kth by more than (1+eps).
			if kth <= (1+eps)*item.bound {
				return res, visited, nil
			}
			for _, c := range t.slots[nd.slot : nd.slot+t.nslots] {
				if c < 0 {
					continue
				}
				if bound := t.region(c).MinSqDist(query); bound < kth {
					heap.Push(&pq, queueItem{bound: bound, seq: seq, id: c})
					seq++
				}
			}
		}
	}

	return res, visited, nil
}

// --- min-heap of pending nodes ---

type queueItem struct {
	bound float64 // lower bound on squared distance to the query
	seq   int     // push order; among equal bounds the latest push pops first
	id    int
}

// nodeQueue is a min-heap of queueItem ordered by bound, then by reverse
// push order.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].bound != q[j].bound {
		return q[i].bound < q[j].bound
	}
	return q[i].seq > q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
