package quadtree

import (
	"math"
	"math/rand"
	"sort"
	"testing"
)

// scenarioPoints is the five point square with a center point used by the
// end-to-end scenarios.
func scenarioPoints() [][]float64 {
	return [][]float64{{0, 0}, {10, 0}, {0, 10}, {10, 10}, {5, 5}}
}

var scenarioBounds = Bounds{{0, 10}, {0, 10}}

// randomPoints returns n uniformly distributed points in [0, scale)^dims.
func randomPoints(rng *rand.Rand, n, dims int, scale float64) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dims)
		for d := range pts[i] {
			pts[i][d] = rng.Float64() * scale
		}
	}
	return pts
}

// clusteredPoints returns n points in a few tight clusters far apart from
// each other, the input that makes an uncompressed quadtree deep.
func clusteredPoints(rng *rand.Rand, n, dims int) [][]float64 {
	centers := [][]float64{}
	for c := 0; c < 3; c++ {
		ctr := make([]float64, dims)
		for d := range ctr {
			ctr[d] = float64(c) * 1000
		}
		centers = append(centers, ctr)
	}
	pts := make([][]float64, n)
	for i := range pts {
		ctr := centers[i%len(centers)]
		pts[i] = make([]float64, dims)
		for d := range pts[i] {
			pts[i][d] = ctr[d] + rng.Float64()*1e-6
		}
	}
	return pts
}

// bruteForceKNN returns the k nearest points to q by linear scan, ascending
// by squared distance.
func bruteForceKNN(points [][]float64, q []float64, k int) []Neighbor {
	all := make([]Neighbor, len(points))
	for i, p := range points {
		all[i] = Neighbor{Index: i, Point: p, SqDist: SqDist(q, p)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].SqDist < all[j].SqDist })
	if k < len(all) {
		all = all[:k]
	}
	return all
}

func sqDists(nn []Neighbor) []float64 {
	out := make([]float64, len(nn))
	for i, nb := range nn {
		out[i] = nb.SqDist
	}
	return out
}

func indices(nn []Neighbor) []int {
	out := make([]int, len(nn))
	for i, nb := range nn {
		out[i] = nb.Index
	}
	return out
}

func mustBuild(t testing.TB, points [][]float64, bounds Bounds, cfg Config) *Tree {
	t.Helper()
	tree, err := Build(points, bounds, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return tree
}

func mustNew(t testing.TB, points [][]float64) *Tree {
	t.Helper()
	tree, err := New(points, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tree
}

// checkInvariants verifies the structural invariants of a built tree:
// internal nodes have at least two children, child regions nest inside their
// parent at a power-of-two fraction of its radius, sizes add up, and every
// leaf contains its point.
func checkInvariants(t *testing.T, tree *Tree) {
	t.Helper()
	const tol = 1e-9

	if got := tree.Root().Size(); got != tree.NumPoints() {
		t.Errorf("root size = %d, want %d", got, tree.NumPoints())
	}

	seen := make(map[int]bool)
	tree.Walk(func(n Node, depth int) bool {
		switch n.Kind() {
		case KindLeaf:
			p := n.Point()
			if seen[p] {
				t.Errorf("point %d stored in more than one leaf", p)
			}
			seen[p] = true
			if !n.Contains(tree.Points()[p]) {
				t.Errorf("leaf %d region %+v does not contain point %d %v", n.ID(), n.Region(), p, tree.Points()[p])
			}
			if n.Size() != 1 {
				t.Errorf("leaf %d size = %d, want 1", n.ID(), n.Size())
			}
		case KindInternal:
			children := n.Children()
			if len(children) < 2 {
				t.Errorf("internal node %d at depth %d has %d children, want >= 2", n.ID(), depth, len(children))
			}
			if n.NumSlots() != 1<<tree.Dims() {
				t.Errorf("internal node %d has %d slots, want %d", n.ID(), n.NumSlots(), 1<<tree.Dims())
			}
			pr := n.Region()
			sum := 0
			for _, c := range children {
				sum += c.Size()
				cr := c.Region()
				ratio := pr.Radius / cr.Radius
				if lg := math.Log2(ratio); ratio < 2-tol || math.Abs(lg-math.Round(lg)) > 1e-9 {
					t.Errorf("child %d radius %g is not parent radius %g / 2^m", c.ID(), cr.Radius, pr.Radius)
				}
				for d := range pr.Mid {
					if math.Abs(cr.Mid[d]-pr.Mid[d])+cr.Radius > pr.Radius+tol {
						t.Errorf("child %d region %+v escapes parent %+v", c.ID(), cr, pr)
						break
					}
				}
			}
			if sum != n.Size() {
				t.Errorf("internal node %d size = %d, children sum to %d", n.ID(), n.Size(), sum)
			}
		case KindStopped:
			if n.Size() < 2 {
				t.Errorf("stopped node %d size = %d, want >= 2", n.ID(), n.Size())
			}
		}
		return true
	})
}
