package functions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	k, err := KindOf("mean")
	require.NoError(t, err)
	assert.Equal(t, Mean, k)

	_, err = KindOf("bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpec)
	assert.Contains(t, err.Error(), "bogus")
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(Kind("nope"))
	assert.ErrorIs(t, err, ErrSpec)
}

func TestNewWithParamsClosedMerge(t *testing.T) {
	r, err := NewWithParams(Quantile, Params{"q": 0.75})
	require.NoError(t, err)
	assert.Equal(t, Quantile, r.Kind())

	_, err = NewWithParams(Quantile, Params{"qq": 0.75})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpec)
	assert.Contains(t, err.Error(), "qq")

	// a kind without parameters accepts no overrides at all
	_, err = NewWithParams(Mean, Params{"q": 0.5})
	assert.ErrorIs(t, err, ErrSpec)
}

func TestRegisterCustomKind(t *testing.T) {
	kind := Kind("double_mean")
	err := Register(kind, nil, func(Params) (Reducer, error) {
		return &customDouble{newBase(kind)}, nil
	})
	require.NoError(t, err)
	defer Default().Unregister(kind)

	r, err := New(kind)
	require.NoError(t, err)
	got, err := r.Reduce([]float64{2, 4})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, got, 1e-9)

	// double registration is rejected
	err = Register(kind, nil, func(Params) (Reducer, error) { return nil, nil })
	assert.ErrorIs(t, err, ErrSpec)
}

type customDouble struct{ baseReducer }

func (c *customDouble) Reduce(values []float64) (float64, error) {
	xs := collect(values)
	if len(xs) == 0 {
		return math.NaN(), nil
	}
	sum := 0.0
	for _, v := range xs {
		sum += v
	}
	return 2 * sum / float64(len(xs)), nil
}

func TestRegisterValidation(t *testing.T) {
	assert.ErrorIs(t, Register("", nil, func(Params) (Reducer, error) { return nil, nil }), ErrSpec)
	assert.ErrorIs(t, Register("x", nil, nil), ErrSpec)
}

func TestKindsSorted(t *testing.T) {
	kinds := Kinds()
	require.NotEmpty(t, kinds)
	for i := 1; i < len(kinds); i++ {
		assert.Less(t, string(kinds[i-1]), string(kinds[i]))
	}
	assert.Contains(t, kinds, Mean)
	assert.Contains(t, kinds, Quantile)
	assert.Contains(t, kinds, Corr)
}
