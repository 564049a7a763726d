// Package salary turns advertised salary bounds into point estimates.
package salary

const (
	// lower bounds undercount actual pay
	fromOnlyFactor = 1.2
	// upper bounds overstate actual pay
	toOnlyFactor = 0.8
)

// Estimate returns a single salary figure for the given bounds.
// ok is false when neither bound is present.
func Estimate(from, to *float64) (value float64, ok bool) {
	switch {
	case from != nil && to != nil:
		return (*from + *to) / 2, true
	case from != nil:
		return *from * fromOnlyFactor, true
	case to != nil:
		return *to * toOnlyFactor, true
	default:
		return 0, false
	}
}

// Mean returns the arithmetic mean of values, or ok=false for an empty slice
func Mean(values []float64) (mean float64, ok bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values)), true
}
