// Package quadtree implements a compressed 2^d-ary space partition (a
// quadtree generalized to any dimension) with approximate k-nearest-neighbor
// search.
//
// Each internal node splits its hypercube at the center into 2^d orthants.
// Chains of nodes with a single non-empty orthant are collapsed into their
// one live descendant, so the depth of the tree depends on the number of
// points rather than on how tightly they are clustered.
//
// Basic usage:
//
//	tree, err := quadtree.New(points, quadtree.DefaultConfig())
//	nn, err := tree.QueryKNN(3, []float64{5, 4}, 0)
//	// nn[0].Index is the row of points closest to (5, 4)
//	// nn[0].SqDist is its squared Euclidean distance
//
// To supply the bounding range explicitly:
//
//	bounds := quadtree.Bounds{{0, 10}, {0, 10}}
//	tree, err := quadtree.Build(points, bounds, cfg)
//
// # Approximation
//
// QueryKNN takes an approximation factor eps. The search stops as soon as the
// current k-th best squared distance is no larger than (1+eps) times the
// lower bound of the next unexplored region. eps = 0 gives exact results.
// Note that eps scales squared distances, not linear ones.
//
// # Partial trees
//
// Config.Stop is consulted at every construction step. Returning true for a
// node holding more than one point leaves it unsubdivided; such nodes have
// Kind KindStopped and contribute nothing to queries. Structures that build
// on top of this tree use the hook to bound its size.
package quadtree
