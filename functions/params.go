package functions

import (
	"fmt"
	"sort"

	"github.com/timeroll/timeroll/utils/cast"
)

// Params carries named parameters for configurable reductions, such as the
// quantile level or the paired column of a correlation.
type Params map[string]interface{}

// Clone returns a copy of the parameter set.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Float reads a numeric parameter.
func (p Params) Float(key string) (float64, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrSpec, key)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q: %v", ErrSpec, key, err)
	}
	return f, nil
}

// Int reads an integer parameter.
func (p Params) Int(key string) (int, error) {
	v, ok := p[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing parameter %q", ErrSpec, key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %q: %v", ErrSpec, key, err)
	}
	return n, nil
}

// String reads a string parameter.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", fmt.Errorf("%w: missing parameter %q", ErrSpec, key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%w: parameter %q: %v", ErrSpec, key, err)
	}
	return s, nil
}

// mergeParams layers overrides over a kind's defaults. The key set is
// closed: every override key must already exist in the defaults, so a typo
// cannot silently introduce a new parameter.
func mergeParams(kind Kind, defaults, overrides Params) (Params, error) {
	out := defaults.Clone()
	if out == nil {
		out = Params{}
	}
	for k, v := range overrides {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("%w: unknown parameter %q for %s (accepted: %v)", ErrSpec, k, kind, paramKeys(defaults))
		}
		out[k] = v
	}
	return out, nil
}

func paramKeys(p Params) []string {
	if len(p) == 0 {
		return []string{"none"}
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
