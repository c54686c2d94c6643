package quadtree

import (
	"cmp"
	"fmt"
	"slices"
)

// NodeInfo describes a region under construction, as passed to a StopFunc.
// Points holds the indices of the points inside the region; it is only valid
// for the duration of the call and must not be modified.
type NodeInfo struct {
	Region Region
	Points []int
}

// StopFunc decides whether to stop subdividing a region at the given depth
// (the root is at depth 0). It is called once for every region Build visits,
// including single point regions whose result is ignored.
type StopFunc func(info NodeInfo, depth int) bool

// orthantRun is a contiguous range idx[lo:hi] of points sharing an orthant.
type orthantRun struct {
	orthant int
	lo, hi  int
}

type keyedPoint struct {
	orthant int
	point   int
}

type builder struct {
	t        *Tree
	stop     StopFunc
	maxDepth int
	scratch  []keyedPoint
}

func build(points [][]float64, bounds Bounds, cfg *Config) (*Tree, error) {
	n := len(points)
	if n == 0 {
		return nil, ErrNoPoints
	}
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	dims := bounds.Dims()
	root := bounds.Region()
	for i, p := range points {
		if len(p) != dims {
			return nil, &DimensionMismatchError{Expected: dims, Actual: len(p), Index: i}
		}
		if !root.Contains(p) {
			return nil, fmt.Errorf("%w: point %d %v", ErrPointOutOfBounds, i, p)
		}
	}

	// A compressed tree over n points has at most n-1 internal nodes.
	t := &Tree{
		points:  points,
		dims:    dims,
		nslots:  1 << dims,
		nodes:   make([]node, 0, 2*n-1),
		mids:    make([]float64, 0, (2*n-1)*dims),
		leafOf:  make([]int, n),
		workers: cfg.Workers,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	for i := range t.leafOf {
		t.leafOf[i] = -1
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	b := &builder{
		t:        t,
		stop:     cfg.Stop,
		maxDepth: cfg.MaxDepth,
		scratch:  make([]keyedPoint, n),
	}
	id, err := b.partition(root.Mid, root.Radius, idx, 0)
	if err != nil {
		return nil, err
	}
	t.root = id
	t.stats = t.computeStats()
	return t, nil
}

// partition builds the subtree for the points idx inside the region
// (mid, radius) and returns its node id. When fewer than two orthants are
// non-empty the region itself is never materialized: the single child is
// returned in its place.
func (b *builder) partition(mid []float64, radius float64, idx []int, depth int) (int, error) {
	info := NodeInfo{Region: Region{Mid: mid, Radius: radius}, Points: idx}

	if len(idx) == 1 {
		if b.stop != nil {
			b.stop(info, depth)
		}
		return b.t.addLeaf(mid, radius, idx[0]), nil
	}

	if b.stop != nil && b.stop(info, depth) {
		return b.t.addStopped(mid, radius, len(idx)), nil
	}

	if depth >= b.maxDepth {
		return -1, fmt.Errorf("%w: %d points still share a region of radius %g at depth %d",
			ErrMaxDepthExceeded, len(idx), radius, depth)
	}

	runs := b.split(mid, idx)
	half := radius / 2

	orthants := make([]int, len(runs))
	children := make([]int, len(runs))
	for i, r := range runs {
		childMidBuf := make([]float64, len(mid))
		childMid(childMidBuf, mid, half, r.orthant)
		c, err := b.partition(childMidBuf, half, idx[r.lo:r.hi], depth+1)
		if err != nil {
			return -1, err
		}
		orthants[i] = r.orthant
		children[i] = c
	}

	// Compress: a region with one live orthant is replaced by that child.
	if len(runs) < 2 {
		return children[0], nil
	}
	return b.t.addInternal(mid, radius, orthants, children, len(idx)), nil
}

// split reorders idx so points sharing an orthant of mid are contiguous, in
// ascending orthant order, and returns the runs. The relative order of points
// within an orthant is preserved.
func (b *builder) split(mid []float64, idx []int) []orthantRun {
	keyed := b.scratch[:len(idx)]
	for i, p := range idx {
		keyed[i] = keyedPoint{orthant: orthant(mid, b.t.points[p]), point: p}
	}
	slices.SortStableFunc(keyed, func(a, c keyedPoint) int {
		return cmp.Compare(a.orthant, c.orthant)
	})

	var runs []orthantRun
	for i, kp := range keyed {
		idx[i] = kp.point
		if i == 0 || kp.orthant != keyed[i-1].orthant {
			runs = append(runs, orthantRun{orthant: kp.orthant, lo: i})
		}
		runs[len(runs)-1].hi = i + 1
	}
	return runs
}
