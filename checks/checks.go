package checks

import (
	"fmt"
	"strings"

	"github.com/timeroll/timeroll/frame"
	"github.com/timeroll/timeroll/utils/timex"
)

// DateColumn verifies that the column exists and that every cell coerces to
// a timestamp. It runs before any computation so malformed tables fail fast.
func DateColumn(f *frame.Frame, name string) error {
	if name == "" {
		return fmt.Errorf("%w: date column name is empty", frame.ErrData)
	}
	if !f.HasColumn(name) {
		return fmt.Errorf("%w: date column %q not found (columns: %s)",
			frame.ErrData, name, strings.Join(f.Columns(), ", "))
	}
	for i := 0; i < f.Len(); i++ {
		if _, err := timex.ToTimeE(f.Value(i, name)); err != nil {
			return fmt.Errorf("%w: date column %q row %d: %v", frame.ErrData, name, i, err)
		}
	}
	return nil
}

// ValueColumns verifies that every named column exists. Cell values are not
// inspected; non-numeric cells coerce to missing during computation.
func ValueColumns(f *frame.Frame, names []string) error {
	var missing []string
	for _, n := range names {
		if !f.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: value columns not found: %s", frame.ErrData, strings.Join(missing, ", "))
	}
	return nil
}
