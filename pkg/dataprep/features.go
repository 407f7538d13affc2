package dataprep

import "math"

// DeriveAge converts manufacture years into ages relative to currentYear.
// Missing years stay missing.
func DeriveAge(years []float64, currentYear int) []float64 {
	out := make([]float64, len(years))
	for i, y := range years {
		if math.IsNaN(y) {
			out[i] = math.NaN()
			continue
		}
		out[i] = float64(currentYear) - y
	}
	return out
}

// FeatureSelect selects rows by indices.
func FeatureSelect[T any](col []T, indices []int) []T {
	out := make([]T, len(indices))
	for j, idx := range indices {
		out[j] = col[idx]
	}
	return out
}
