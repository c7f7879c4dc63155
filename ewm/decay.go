package ewm

import (
	"fmt"
	"math"
	"strconv"

	"github.com/timeroll/timeroll/functions"
)

// Decay selects the exponential weighting through exactly one parameter.
// The zero value carries no parameter and fails normalization.
type Decay struct {
	param string
	value float64
}

// Alpha sets the smoothing factor directly. Valid values lie in (0, 1].
func Alpha(a float64) Decay {
	return Decay{param: "alpha", value: a}
}

// Com sets the center of mass: alpha = 1/(1+com), com >= 0.
func Com(c float64) Decay {
	return Decay{param: "com", value: c}
}

// Span sets the span: alpha = 2/(span+1), span >= 1.
func Span(s float64) Decay {
	return Decay{param: "span", value: s}
}

// HalfLife sets the half-life: alpha = 1-exp(-ln2/halflife), halflife > 0.
func HalfLife(h float64) Decay {
	return Decay{param: "halflife", value: h}
}

// tag renders the parameter for output column names, such as "alpha_0.1".
func (d Decay) tag() string {
	return d.param + "_" + strconv.FormatFloat(d.value, 'g', -1, 64)
}

// resolve validates the parameter domain and returns the smoothing factor.
// The guards are written in positive form so NaN fails every domain.
func (d Decay) resolve() (float64, error) {
	switch d.param {
	case "alpha":
		if !(d.value > 0 && d.value <= 1) {
			return 0, fmt.Errorf("%w: alpha must lie in (0, 1], got %v", functions.ErrSpec, d.value)
		}
		return d.value, nil
	case "com":
		if !(d.value >= 0) {
			return 0, fmt.Errorf("%w: com must not be negative, got %v", functions.ErrSpec, d.value)
		}
		return 1 / (1 + d.value), nil
	case "span":
		if !(d.value >= 1) {
			return 0, fmt.Errorf("%w: span must be at least 1, got %v", functions.ErrSpec, d.value)
		}
		return 2 / (d.value + 1), nil
	case "halflife":
		if !(d.value > 0) {
			return 0, fmt.Errorf("%w: halflife must be positive, got %v", functions.ErrSpec, d.value)
		}
		return 1 - math.Exp(-math.Ln2/d.value), nil
	case "":
		return 0, fmt.Errorf("%w: no valid decay parameter, use Alpha, Com, Span or HalfLife", functions.ErrSpec)
	default:
		return 0, fmt.Errorf("%w: unknown decay parameter %q", functions.ErrSpec, d.param)
	}
}
