package functions

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func init() {
	mustRegister := func(kind Kind, defaults Params, build func(Params) (Reducer, error)) {
		if err := Register(kind, defaults, build); err != nil {
			panic(err)
		}
	}

	mustRegister(Mean, nil, newMeanReducer)
	mustRegister(Sum, nil, newSumReducer)
	mustRegister(Count, nil, newCountReducer)
	mustRegister(Min, nil, newMinReducer)
	mustRegister(Max, nil, newMaxReducer)
	mustRegister(First, nil, newFirstReducer)
	mustRegister(Last, nil, newLastReducer)
	mustRegister(Range, nil, newRangeReducer)
	mustRegister(Median, nil, newMedianReducer)
	mustRegister(Quantile, Params{"q": 0.5, "interpolation": interpLinear}, newQuantileReducer)
	mustRegister(Std, Params{"ddof": 1}, newStdReducer)
	mustRegister(Var, Params{"ddof": 1}, newVarReducer)
	mustRegister(Skew, nil, newSkewReducer)
	mustRegister(Kurt, nil, newKurtReducer)
	mustRegister(Corr, Params{"other": ""}, newCorrReducer)
	mustRegister(Cov, Params{"other": ""}, newCovReducer)
}

// collect returns the non-NaN values of the window. When the window is
// already clean the input slice itself comes back, so the common case does
// not allocate. Callers must not mutate the result.
func collect(values []float64) []float64 {
	clean := true
	for _, v := range values {
		if math.IsNaN(v) {
			clean = false
			break
		}
	}
	if clean {
		return values
	}
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

type meanReducer struct{ baseReducer }

func newMeanReducer(Params) (Reducer, error) {
	return &meanReducer{newBase(Mean)}, nil
}

func (r *meanReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return stat.Mean(xs, nil), nil
}

type sumReducer struct{ baseReducer }

func newSumReducer(Params) (Reducer, error) {
	return &sumReducer{newBase(Sum)}, nil
}

func (r *sumReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return floats.Sum(xs), nil
}

type countReducer struct{ baseReducer }

func newCountReducer(Params) (Reducer, error) {
	return &countReducer{newBase(Count)}, nil
}

// Reduce counts the usable values in the window, so NaN cells do not count.
func (r *countReducer) Reduce(values []float64) (float64, error) {
	return float64(len(collect(values))), nil
}

type minReducer struct{ baseReducer }

func newMinReducer(Params) (Reducer, error) {
	return &minReducer{newBase(Min)}, nil
}

func (r *minReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return floats.Min(xs), nil
}

type maxReducer struct{ baseReducer }

func newMaxReducer(Params) (Reducer, error) {
	return &maxReducer{newBase(Max)}, nil
}

func (r *maxReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return floats.Max(xs), nil
}

type firstReducer struct{ baseReducer }

func newFirstReducer(Params) (Reducer, error) {
	return &firstReducer{newBase(First)}, nil
}

func (r *firstReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return xs[0], nil
}

type lastReducer struct{ baseReducer }

func newLastReducer(Params) (Reducer, error) {
	return &lastReducer{newBase(Last)}, nil
}

func (r *lastReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return xs[len(xs)-1], nil
}

type rangeReducer struct{ baseReducer }

func newRangeReducer(Params) (Reducer, error) {
	return &rangeReducer{newBase(Range)}, nil
}

func (r *rangeReducer) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	return floats.Max(xs) - floats.Min(xs), nil
}
