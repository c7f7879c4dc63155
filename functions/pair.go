package functions

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// pairBase carries the shared plumbing of two-series reducers: the name of
// the paired column and the rejection of single-series use.
type pairBase struct {
	baseReducer
	other string
}

func newPairBase(kind Kind, p Params) (pairBase, error) {
	other, err := p.String("other")
	if err != nil {
		return pairBase{}, err
	}
	if other == "" {
		return pairBase{}, fmt.Errorf("%w: %s requires the %q parameter naming the paired column", ErrSpec, kind, "other")
	}
	return pairBase{baseReducer: newBase(kind), other: other}, nil
}

func (b *pairBase) Other() string {
	return b.other
}

func (b *pairBase) Reduce(values []float64) (float64, error) {
	return 0, fmt.Errorf("%s reduces two series, not one", b.Name())
}

// collectPairs keeps the positions where both series hold usable values.
func collectPairs(a, b []float64) (ax, bx []float64) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	ax = make([]float64, 0, n)
	bx = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(a[i]) || math.IsNaN(b[i]) {
			continue
		}
		ax = append(ax, a[i])
		bx = append(bx, b[i])
	}
	return ax, bx
}

type corrReducer struct{ pairBase }

func newCorrReducer(p Params) (Reducer, error) {
	base, err := newPairBase(Corr, p)
	if err != nil {
		return nil, err
	}
	return &corrReducer{pairBase: base}, nil
}

var _ PairReducer = (*corrReducer)(nil)

func (r *corrReducer) ReducePair(a, b []float64) (float64, error) {
	ax, bx := collectPairs(a, b)
	if len(ax) < 2 {
		return math.NaN(), nil
	}
	return stat.Correlation(ax, bx, nil), nil
}

type covReducer struct{ pairBase }

func newCovReducer(p Params) (Reducer, error) {
	base, err := newPairBase(Cov, p)
	if err != nil {
		return nil, err
	}
	return &covReducer{pairBase: base}, nil
}

var _ PairReducer = (*covReducer)(nil)

func (r *covReducer) ReducePair(a, b []float64) (float64, error) {
	ax, bx := collectPairs(a, b)
	if len(ax) < 2 {
		return math.NaN(), nil
	}
	return stat.Covariance(ax, bx, nil), nil
}
