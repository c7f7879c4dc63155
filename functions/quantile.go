package functions

import (
	"fmt"
	"math"
	"sort"
)

// Interpolation strategies for a quantile that falls between two samples.
const (
	interpLinear   = "linear"
	interpLower    = "lower"
	interpHigher   = "higher"
	interpNearest  = "nearest"
	interpMidpoint = "midpoint"
)

type quantileReducer struct {
	baseReducer
	q      float64
	interp string
}

func newQuantileReducer(p Params) (Reducer, error) {
	q, err := p.Float("q")
	if err != nil {
		return nil, err
	}
	if q < 0 || q > 1 {
		return nil, fmt.Errorf("%w: quantile level must be in [0, 1], got %v", ErrSpec, q)
	}
	interp, err := p.String("interpolation")
	if err != nil {
		return nil, err
	}
	switch interp {
	case interpLinear, interpLower, interpHigher, interpNearest, interpMidpoint:
	default:
		return nil, fmt.Errorf("%w: unknown interpolation %q", ErrSpec, interp)
	}
	return &quantileReducer{baseReducer: newBase(Quantile), q: q, interp: interp}, nil
}

func (r *quantileReducer) Reduce(values []float64) (float64, error) {
	return quantileOf(values, r.q, r.interp), nil
}

type medianReducer struct{ baseReducer }

func newMedianReducer(Params) (Reducer, error) {
	return &medianReducer{newBase(Median)}, nil
}

func (r *medianReducer) Reduce(values []float64) (float64, error) {
	return quantileOf(values, 0.5, interpLinear), nil
}

// quantileOf evaluates the q-th quantile over the usable values with the
// h = (n-1)q positioning convention. The input is copied before sorting.
func quantileOf(values []float64, q float64, interp string) float64 {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)

	h := float64(len(sorted)-1) * q
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	switch interp {
	case interpLower:
		return sorted[lo]
	case interpHigher:
		return sorted[hi]
	case interpNearest:
		return sorted[int(math.RoundToEven(h))]
	case interpMidpoint:
		return (sorted[lo] + sorted[hi]) / 2
	default:
		return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
	}
}
