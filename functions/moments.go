package functions

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// ddofOf validates the delta-degrees-of-freedom parameter. Only the sample
// (1) and population (0) estimators are supported.
func ddofOf(p Params) (int, error) {
	ddof, err := p.Int("ddof")
	if err != nil {
		return 0, err
	}
	if ddof != 0 && ddof != 1 {
		return 0, fmt.Errorf("%w: ddof must be 0 or 1, got %d", ErrSpec, ddof)
	}
	return ddof, nil
}

type stdReducer struct {
	baseReducer
	ddof int
}

func newStdReducer(p Params) (Reducer, error) {
	ddof, err := ddofOf(p)
	if err != nil {
		return nil, err
	}
	return &stdReducer{baseReducer: newBase(Std), ddof: ddof}, nil
}

func (r *stdReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	if r.ddof == 0 {
		return stat.PopStdDev(xs, nil), nil
	}
	if len(xs) < 2 {
		return math.NaN(), nil
	}
	return stat.StdDev(xs, nil), nil
}

type varReducer struct {
	baseReducer
	ddof int
}

func newVarReducer(p Params) (Reducer, error) {
	ddof, err := ddofOf(p)
	if err != nil {
		return nil, err
	}
	return &varReducer{baseReducer: newBase(Var), ddof: ddof}, nil
}

func (r *varReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	if r.ddof == 0 {
		return stat.PopVariance(xs, nil), nil
	}
	if len(xs) < 2 {
		return math.NaN(), nil
	}
	return stat.Variance(xs, nil), nil
}

type skewReducer struct{ baseReducer }

func newSkewReducer(Params) (Reducer, error) {
	return &skewReducer{newBase(Skew)}, nil
}

// Reduce computes the adjusted sample skewness; it needs at least three
// usable values.
func (r *skewReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) < 3 {
		return math.NaN(), nil
	}
	return stat.Skew(xs, nil), nil
}

type kurtReducer struct{ baseReducer }

func newKurtReducer(Params) (Reducer, error) {
	return &kurtReducer{newBase(Kurt)}, nil
}

// Reduce computes the unbiased excess kurtosis; it needs at least four
// usable values.
func (r *kurtReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) < 4 {
		return math.NaN(), nil
	}
	return stat.ExKurtosis(xs, nil), nil
}
