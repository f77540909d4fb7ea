package recognizer

import "math"

// EuclideanDistance computes the euclidean distance between two encodings.
// Returns +Inf for mismatched or empty inputs so they never match.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return math.Inf(1)
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}

// Match reports whether two face encodings belong to the same person. A
// tolerance of 0 or below falls back to DefaultTolerance.
func Match(a, b []float32, tolerance float64) bool {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return EuclideanDistance(a, b) <= tolerance
}
