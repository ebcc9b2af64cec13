package lattice

import "sort"

// FindIndex returns the index of the coordinate closest to q in the strictly
// increasing coords. Ties go to the lower index; queries outside the range
// resolve to the nearest end.
func FindIndex(q float64, coords []float64) int {
	i := sort.SearchFloat64s(coords, q) // first coords[i] >= q
	if i == 0 {
		return 0
	}
	if i == len(coords) {
		return len(coords) - 1
	}
	if q-coords[i-1] <= coords[i]-q {
		return i - 1
	}
	return i
}
