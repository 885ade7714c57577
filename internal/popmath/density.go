package popmath

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Dnorm evaluates the normal probability density at x. sd must be
// strictly positive.
func Dnorm(x, mean, sd float64) (float64, error) {
	if sd <= 0 {
		return 0, fmt.Errorf("%w: dnorm requires sd > 0, got %g", ErrInvalidArgument, sd)
	}
	return distuv.Normal{Mu: mean, Sigma: sd}.Prob(x), nil
}

// DnormLog evaluates the natural log of the normal density at x.
func DnormLog(x, mean, sd float64) (float64, error) {
	if sd <= 0 {
		return 0, fmt.Errorf("%w: dnorm requires sd > 0, got %g", ErrInvalidArgument, sd)
	}
	return distuv.Normal{Mu: mean, Sigma: sd}.LogProb(x), nil
}

// Dlnorm evaluates the log-normal probability density at x, parameterized
// by the mean and standard deviation of log(x). Both x and sdLog must be
// strictly positive.
func Dlnorm(x, meanLog, sdLog float64) (float64, error) {
	if err := checkLnormArgs(x, sdLog); err != nil {
		return 0, err
	}
	return distuv.LogNormal{Mu: meanLog, Sigma: sdLog}.Prob(x), nil
}

// DlnormLog evaluates the natural log of the log-normal density at x.
func DlnormLog(x, meanLog, sdLog float64) (float64, error) {
	if err := checkLnormArgs(x, sdLog); err != nil {
		return 0, err
	}
	return distuv.LogNormal{Mu: meanLog, Sigma: sdLog}.LogProb(x), nil
}

func checkLnormArgs(x, sdLog float64) error {
	if sdLog <= 0 {
		return fmt.Errorf("%w: dlnorm requires sdLog > 0, got %g", ErrInvalidArgument, sdLog)
	}
	if x <= 0 {
		return fmt.Errorf("%w: dlnorm requires x > 0, got %g", ErrInvalidArgument, x)
	}
	return nil
}

// Dmultinom evaluates the multinomial probability density for counts x
// under probabilities p. p is renormalized internally to sum to one; x
// and p must have equal, non-zero length.
func Dmultinom(x, p []float64) (float64, error) {
	lp, err := DmultinomLog(x, p)
	if err != nil {
		return 0, err
	}
	return math.Exp(lp), nil
}

// DmultinomLog evaluates the natural log of the multinomial density:
//
//	lgamma(sum(x)+1) - sum(lgamma(x+1)) + sum(x*log(p))
func DmultinomLog(x, p []float64) (float64, error) {
	if len(x) != len(p) {
		return 0, fmt.Errorf("%w: counts %d, probabilities %d", ErrDimensionMismatch, len(x), len(p))
	}
	if len(x) == 0 {
		return 0, fmt.Errorf("%w: empty vectors", ErrDimensionMismatch)
	}

	sumP := floats.Sum(p)
	if sumP <= 0 {
		return 0, fmt.Errorf("%w: probability vector sums to %g", ErrInvalidArgument, sumP)
	}

	total, err := Lgamma(floats.Sum(x) + 1.0)
	if err != nil {
		return 0, err
	}
	ret := total
	for i := range x {
		lx, err := Lgamma(x[i] + 1.0)
		if err != nil {
			return 0, err
		}
		ret -= lx
		ret += x[i] * math.Log(p[i]/sumP)
	}
	return ret, nil
}
