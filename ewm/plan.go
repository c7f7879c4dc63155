package ewm

import (
	"fmt"
	"sort"

	"github.com/timeroll/timeroll/functions"
)

// Kind enumerates the exponentially weighted statistics. The set is closed;
// unknown names fail normalization.
type Kind string

const (
	Mean Kind = "mean"
	Sum  Kind = "sum"
	Std  Kind = "std"
	Var  Kind = "var"
)

var kinds = map[Kind]bool{Mean: true, Sum: true, Std: true, Var: true}

// KindOf resolves a statistic name.
func KindOf(name string) (Kind, error) {
	k := Kind(name)
	if !kinds[k] {
		return "", fmt.Errorf("%w: unknown ewm statistic %q (accepted: %v)", functions.ErrSpec, name, Kinds())
	}
	return k, nil
}

// Kinds returns the accepted statistic names in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// Unit is one executable cell of an ewm plan.
type Unit struct {
	Column string
	Kind   Kind
	Output string
}

// Plan is a normalized exponentially weighted specification. Alpha is the
// resolved smoothing factor; output names tag the caller's own decay
// parameter and value.
type Plan struct {
	Units []Unit
	Alpha float64
}

// Normalize expands value columns and statistics into a validated plan.
func Normalize(valueColumns []string, stats []Kind, decay Decay) (*Plan, error) {
	if len(valueColumns) == 0 {
		return nil, fmt.Errorf("%w: at least one value column is required", functions.ErrSpec)
	}
	for _, c := range valueColumns {
		if c == "" {
			return nil, fmt.Errorf("%w: empty value column name", functions.ErrSpec)
		}
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: at least one ewm statistic is required", functions.ErrSpec)
	}
	for _, k := range stats {
		if !kinds[k] {
			return nil, fmt.Errorf("%w: unknown ewm statistic %q (accepted: %v)", functions.ErrSpec, k, Kinds())
		}
	}
	alpha, err := decay.resolve()
	if err != nil {
		return nil, err
	}

	plan := &Plan{Alpha: alpha}
	seen := make(map[string]bool)
	for _, col := range valueColumns {
		for _, k := range stats {
			u := Unit{
				Column: col,
				Kind:   k,
				Output: fmt.Sprintf("%s_ewm_%s_%s", col, k, decay.tag()),
			}
			if seen[u.Output] {
				return nil, fmt.Errorf("%w: duplicate output column %q", functions.ErrSpec, u.Output)
			}
			seen[u.Output] = true
			plan.Units = append(plan.Units, u)
		}
	}
	return plan, nil
}

// Outputs returns the output column names in append order.
func (p *Plan) Outputs() []string {
	out := make([]string, len(p.Units))
	for i, u := range p.Units {
		out[i] = u.Output
	}
	return out
}
