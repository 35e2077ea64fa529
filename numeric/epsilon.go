package numeric

import "math"

// FloatEquals returns true if a and b are equal within a small epsilon threshold.
func FloatEquals(a, b, epsilon float64) bool {
	return math.Abs(a-b) <= epsilon
}

// FloatGreaterThan checks if 'a' is significantly greater than 'b'.
func FloatGreaterThan(a, b, epsilon float64) bool {
	return a > b && !FloatEquals(a, b, epsilon)
}

// FloatGreaterThanOrEqualTo checks if 'a' is greater than or equal to 'b'.
func FloatGreaterThanOrEqualTo(a, b, epsilon float64) bool {
	return a > b || FloatEquals(a, b, epsilon)
}

// FloatLessThan checks if 'a' is significantly less than 'b'.
func FloatLessThan(a, b, epsilon float64) bool {
	return a < b && !FloatEquals(a, b, epsilon)
}

// FloatLessThanOrEqualTo checks if 'a' is less than or equal to 'b'.
func FloatLessThanOrEqualTo(a, b, epsilon float64) bool {
	return a < b || FloatEquals(a, b, epsilon)
}

// FloatEqualsScaled returns true if a and b are equal within epsilon, scaling the
// tolerance by the magnitude of the larger operand. Plain FloatEquals uses a fixed
// absolute threshold, which is too tight for large coordinates (e.g. circumcenters
// of far-flung triangles). Scaling by
// max(1, |a|, |b|) keeps the comparison an absolute one near the origin while
// behaving like a relative comparison for large magnitudes.
func FloatEqualsScaled(a, b, epsilon float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= epsilon*scale
}
