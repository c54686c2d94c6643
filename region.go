package quadtree

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// LocateEpsilon is the absolute tolerance used by Region.Contains to absorb
// floating-point error on region boundaries.
const LocateEpsilon = 0.001

// Region is an axis-aligned hypercube with center Mid and half side length Radius.
type Region struct {
	Mid    []float64
	Radius float64
}

// Dims returns the dimension of the region.
func (r Region) Dims() int { return len(r.Mid) }

// Contains reports whether p lies inside r, within LocateEpsilon on every axis.
func (r Region) Contains(p []float64) bool {
	for d, m := range r.Mid {
		if m-r.Radius-p[d] > LocateEpsilon || p[d]-m-r.Radius > LocateEpsilon {
			return false
		}
		// Comparisons against NaN are always false.
		if math.IsNaN(p[d]) {
			return false
		}
	}
	return true
}

// MinSqDist returns a lower bound on the squared distance from p to any point
// inside r: zero when p is inside, otherwise the largest single-axis gap
// squared.
func (r Region) MinSqDist(p []float64) float64 {
	var gap float64
	for d, m := range r.Mid {
		var g float64
		if lo := m - r.Radius; p[d] < lo {
			g = lo - p[d]
		} else if hi := m + r.Radius; p[d] > hi {
			g = p[d] - hi
		}
		if g > gap {
			gap = g
		}
	}
	return gap * gap
}

// Orthant returns the index of the orthant of r that p falls in: bit d is set
// when p[d] is strictly greater than Mid[d].
func (r Region) Orthant(p []float64) int {
	return orthant(r.Mid, p)
}

// Child returns the region of the given orthant: half the radius, with the
// center moved by Radius/2 along every axis in the direction of its bit.
func (r Region) Child(orthant int) Region {
	half := r.Radius / 2
	mid := make([]float64, len(r.Mid))
	childMid(mid, r.Mid, half, orthant)
	return Region{Mid: mid, Radius: half}
}

func orthant(mid, p []float64) int {
	o := 0
	for d, m := range mid {
		if p[d] > m {
			o |= 1 << d
		}
	}
	return o
}

func childMid(dst, mid []float64, half float64, orthant int) {
	for d, m := range mid {
		if orthant&(1<<d) != 0 {
			dst[d] = m + half
		} else {
			dst[d] = m - half
		}
	}
}

// Bounds is a per-dimension coordinate range: Bounds[d] = {min, max}.
type Bounds [][2]float64

// BoundsOf returns the tightest Bounds containing every point.
func BoundsOf(points [][]float64) (Bounds, error) {
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	dims := len(points[0])
	col := make([]float64, len(points))
	b := make(Bounds, dims)
	for d := 0; d < dims; d++ {
		for i, p := range points {
			if len(p) != dims {
				return nil, &DimensionMismatchError{Expected: dims, Actual: len(p), Index: i}
			}
			col[i] = p[d]
		}
		b[d] = [2]float64{floats.Min(col), floats.Max(col)}
	}
	return b, nil
}

// Dims returns the number of dimensions covered by b.
func (b Bounds) Dims() int { return len(b) }

// Validate checks that every range is finite and not inverted.
func (b Bounds) Validate() error {
	if len(b) < 1 || len(b) > MaxDims {
		return &InvalidDimensionError{Dims: len(b)}
	}
	for d, r := range b {
		lo, hi := r[0], r[1]
		if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
			return fmt.Errorf("%w: dimension %d range [%g, %g] is not finite", ErrInvalidBounds, d, lo, hi)
		}
		if lo > hi {
			return fmt.Errorf("%w: dimension %d min %g > max %g", ErrInvalidBounds, d, lo, hi)
		}
	}
	return nil
}

// Region returns the root hypercube for b: centered on the middle of every
// range, with the largest per-dimension half extent as its radius.
func (b Bounds) Region() Region {
	mid := make([]float64, len(b))
	var radius float64
	for d, r := range b {
		mid[d] = (r[0] + r[1]) / 2
		if side := (r[1] - r[0]) / 2; side > radius {
			radius = side
		}
	}
	return Region{Mid: mid, Radius: radius}
}
