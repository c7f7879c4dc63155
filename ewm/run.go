package ewm

import (
	"fmt"
	"math"

	"github.com/timeroll/timeroll/frame"
)

// Run evaluates the plan against one group frame in place, appending one
// output column per unit. The frame must already be time-sorted.
func Run(g *frame.Frame, p *Plan) error {
	for i := range p.Units {
		u := &p.Units[i]
		out := weighted(g.Floats(u.Column), p.Alpha, u.Kind)
		if err := g.SetFloatColumn(u.Output, out); err != nil {
			return fmt.Errorf("ewm: %w", err)
		}
	}
	return nil
}

// weighted walks the series once, folding each observation into the running
// weighted sums. Weights follow (1-alpha)^j over the trailing observations.
// Missing values do not advance the decay; the current statistic is emitted
// at their positions. Variance carries the reliability-weights bias
// correction, so the first observation's std and var are missing.
func weighted(vals []float64, alpha float64, kind Kind) []float64 {
	n := len(vals)
	out := make([]float64, n)
	decay := 1 - alpha

	var num, den, sq, sumw2 float64
	obs := 0
	for i, x := range vals {
		if !math.IsNaN(x) {
			num = x + decay*num
			den = 1 + decay*den
			sq = x*x + decay*sq
			sumw2 = 1 + decay*decay*sumw2
			obs++
		}
		if obs == 0 {
			out[i] = math.NaN()
			continue
		}
		switch kind {
		case Sum:
			out[i] = num
		case Std, Var:
			out[i] = variance(num, den, sq, sumw2, obs)
			if kind == Std {
				out[i] = math.Sqrt(out[i])
			}
		default:
			out[i] = num / den
		}
	}
	return out
}

func variance(num, den, sq, sumw2 float64, obs int) float64 {
	if obs < 2 {
		return math.NaN()
	}
	corrected := den - sumw2/den
	if corrected <= 0 {
		return math.NaN()
	}
	v := (sq - num*num/den) / corrected
	if v < 0 {
		return 0
	}
	return v
}
