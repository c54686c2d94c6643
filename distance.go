package quadtree

// SqDist returns the squared Euclidean distance between a and b.
// Both slices must have the same length.
func SqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
