// Package popmath is the life-history math collaborator: pure, stateless
// functions over real-valued inputs used to compute biological rates per
// grid cell — selectivity curves, density functions, and smoothed
// alternatives to non-differentiable primitives.
package popmath

import "math"

// DefaultSmoothing is the default smoothing constant for SmoothAbs,
// SmoothMin, and SmoothMax.
const DefaultSmoothing = 1e-5

// Logistic evaluates the logistic curve at x:
//
//	1 / (1 + exp(-slope * (x - median)))
//
// median is the inflection point, slope the steepness.
func Logistic(median, slope, x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-slope*(x-median)))
}

// DoubleLogistic evaluates a dome-shaped curve: the product of an
// ascending logistic limb and the complement of a descending limb.
// medianDesc should exceed medianAsc.
func DoubleLogistic(medianAsc, slopeAsc, medianDesc, slopeDesc, x float64) float64 {
	return Logistic(medianAsc, slopeAsc, x) * (1.0 - Logistic(medianDesc, slopeDesc, x))
}

// Logit maps a value bounded by (a, b) into unbounded space.
func Logit(a, b, x float64) float64 {
	return -math.Log(b-x) + math.Log(x-a)
}

// InvLogit maps an unbounded value back into (a, b).
func InvLogit(a, b, logitX float64) float64 {
	return a + (b-a)/(1.0+math.Exp(-logitX))
}

// SmoothAbs approximates |x| as sqrt(x*x + c), keeping the derivative
// defined at zero. c must be a small positive constant.
func SmoothAbs(x, c float64) float64 {
	return math.Sqrt(x*x + c)
}

// SmoothMin approximates min(a, b) continuously via SmoothAbs.
func SmoothMin(a, b, c float64) float64 {
	return (a + b - SmoothAbs(a-b, c)) * 0.5
}

// SmoothMax approximates max(a, b) continuously via SmoothAbs.
func SmoothMax(a, b, c float64) float64 {
	return (a + b + SmoothAbs(a-b, c)) * 0.5
}
