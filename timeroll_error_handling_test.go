package timeroll

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/functions"
	"github.com/timeroll/timeroll/logger"
	"github.com/timeroll/timeroll/rolling"
)

func smallFrame() *frame.Frame {
	return frame.New([]frame.Row{
		{"date": day(1), "v": 1.0},
		{"date": day(2), "v": 2.0},
	}, "date", "v")
}

func TestAugmentRollingSpecErrors(t *testing.T) {
	mean := []rolling.FuncSpec{rolling.Name("mean")}

	tests := []struct {
		name string
		run  func() error
	}{
		{name: "unknown function", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
				[]rolling.FuncSpec{rolling.Name("wavelet")}, WithDiscardLog())
			return err
		}},
		{name: "unknown engine", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
				mean, WithEngine(rolling.Engine("gpu")), WithDiscardLog())
			return err
		}},
		{name: "zero window", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(0),
				mean, WithDiscardLog())
			return err
		}},
		{name: "negative min periods", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
				mean, WithMinPeriods(-1), WithDiscardLog())
			return err
		}},
		{name: "no functions", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
				nil, WithDiscardLog())
			return err
		}},
		{name: "unlabeled custom", run: func() error {
			_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
				[]rolling.FuncSpec{rolling.Custom("", func([]float64) (float64, error) { return 0, nil })},
				WithDiscardLog())
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			require.Error(t, err)
			assert.ErrorIs(t, err, functions.ErrSpec)
		})
	}
}

func TestAugmentRollingDataErrors(t *testing.T) {
	mean := []rolling.FuncSpec{rolling.Name("mean")}

	_, err := AugmentRolling(smallFrame(), "when", []string{"v"}, rolling.Window(2), mean, WithDiscardLog())
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)

	_, err = AugmentRolling(smallFrame(), "date", []string{"missing"}, rolling.Window(2), mean, WithDiscardLog())
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)

	// the paired column of a correlation must exist too
	_, err = AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
		[]rolling.FuncSpec{rolling.Corr("c", "volume")}, WithDiscardLog())
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)

	bad := frame.New([]frame.Row{
		{"date": "definitely not a date", "v": 1.0},
	}, "date", "v")
	_, err = AugmentRolling(bad, "date", []string{"v"}, rolling.Window(2), mean, WithDiscardLog())
	require.Error(t, err)
	assert.ErrorIs(t, err, frame.ErrData)
}

func TestAugmentRollingNoPartialOutputOnError(t *testing.T) {
	f := smallFrame()
	_, err := AugmentRolling(f, "date", []string{"missing"}, rolling.Window(2),
		[]rolling.FuncSpec{rolling.Name("mean")}, WithDiscardLog())
	require.Error(t, err)
	assert.Equal(t, []string{"date", "v"}, f.Columns(), "failed calls leave the input untouched")
}

func TestDiagnosticHandlerCapture(t *testing.T) {
	var captured []rolling.Diagnostic
	out, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
		[]rolling.FuncSpec{rolling.Name("quantile")},
		WithMinPeriods(1),
		WithDiagnosticHandler(func(d rolling.Diagnostic) { captured = append(captured, d) }),
		WithDiscardLog())
	require.NoError(t, err)

	require.Len(t, captured, 1)
	assert.Equal(t, rolling.DiagDefaultQuantile, captured[0].Code)
	assert.True(t, out.HasColumn("v_rolling_quantile_50_win_2"))
}

func TestDiagnosticsWarnByDefault(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.WARN, &buf)

	_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
		[]rolling.FuncSpec{rolling.Name("quantile")},
		WithMinPeriods(1), WithLogger(log))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "quantile defaulted")
}

func TestDiagnosticHandlerSuppressesWarning(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger(logger.WARN, &buf)

	_, err := AugmentRolling(smallFrame(), "date", []string{"v"}, rolling.Window(2),
		[]rolling.FuncSpec{rolling.Name("quantile")},
		WithMinPeriods(1), WithLogger(log),
		WithDiagnosticHandler(func(rolling.Diagnostic) {}))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "quantile defaulted")
}
