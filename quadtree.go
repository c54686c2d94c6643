package quadtree

import (
	"fmt"
	"log/slog"
	"runtime"
	"time"
)

// MaxDims is the largest supported dimension. Every internal node carries
// 2^dims child slots, so the slot table grows exponentially with it.
const MaxDims = 16

// DefaultMaxDepth is the default recursion limit for Build.
const DefaultMaxDepth = 256

// Config controls tree construction and query behavior.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Stop is consulted at every construction step. Returning true for a
	// region holding more than one point leaves it unsubdivided. For single
	// point regions the result is ignored. nil never stops.
	Stop StopFunc

	// MaxDepth bounds the recursion of Build. A region at this depth that
	// still holds more than one point (and is not stopped) fails the build
	// with ErrMaxDepthExceeded. 0 means DefaultMaxDepth, so the smallest
	// effective limit is 1. Must be >= 0. Default: 256.
	MaxDepth int

	// Workers controls the number of goroutines used by QueryBatch and
	// KthNeighborDistances. 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Logger receives build and batch query events. nil discards them.
	Logger *slog.Logger

	// Metrics receives build and query measurements. nil disables them.
	Metrics MetricsCollector
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		MaxDepth: DefaultMaxDepth,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("quadtree: MaxDepth must be >= 0, got %d", cfg.MaxDepth)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("quadtree: Workers must be >= 0 (0 means runtime.NumCPU), got %d", cfg.Workers)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(discardHandler{})
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetricsCollector{}
	}
}

// Tree is a compressed 2^d-ary space partition over a caller-owned point set.
// It is immutable once built and safe for concurrent queries.
//
// Nodes are stored in an arena addressed by index:
//   - centers are flat in mids[id*dims : (id+1)*dims]
//   - internal node id owns slots[nodes[id].slot : nodes[id].slot+nslots]
type Tree struct {
	points [][]float64 // caller-owned rows; never copied
	dims   int
	nslots int // 2^dims
	nodes  []node
	mids   []float64
	slots  []int // child node ids, -1 for empty orthants
	root   int
	leafOf []int // point index → leaf node id, -1 inside a stopped node
	stats  Stats

	workers int
	logger  *slog.Logger
	metrics MetricsCollector
}

// New builds a tree over points, using the tightest bounding range of the
// points as the root region.
func New(points [][]float64, cfg Config) (*Tree, error) {
	bounds, err := BoundsOf(points)
	if err != nil {
		return nil, err
	}
	return Build(points, bounds, cfg)
}

// Build constructs a tree over points. bounds gives the per-dimension
// coordinate range; the root region is the hypercube centered on it whose
// half side is the largest per-dimension half extent. Every point must lie
// inside that region. points is retained, not copied: the caller must not
// modify it while the tree is in use.
func Build(points [][]float64, bounds Bounds, cfg Config) (*Tree, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	start := time.Now()
	t, err := build(points, bounds, &cfg)
	elapsed := time.Since(start)

	nodes := 0
	if t != nil {
		nodes = len(t.nodes)
	}
	cfg.Metrics.RecordBuild(len(points), nodes, elapsed, err)
	logBuild(cfg.Logger, len(points), t, elapsed, err)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Dims returns the dimension of the indexed points.
func (t *Tree) Dims() int { return t.dims }

// NumPoints returns the number of indexed points.
func (t *Tree) NumPoints() int { return len(t.points) }

// Points returns the caller-owned point rows the tree was built from.
func (t *Tree) Points() [][]float64 { return t.points }

// Root returns the root node.
func (t *Tree) Root() Node { return Node{t: t, id: t.root} }

// Leaf returns the leaf holding point i. It reports false when i is out of
// range or the point sits inside a stopped node.
func (t *Tree) Leaf(i int) (Node, bool) {
	if i < 0 || i >= len(t.leafOf) || t.leafOf[i] < 0 {
		return Node{}, false
	}
	return Node{t: t, id: t.leafOf[i]}, true
}

// Stats returns counts describing the shape of the tree.
func (t *Tree) Stats() Stats { return t.stats }
