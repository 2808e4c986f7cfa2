package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// rollingExtreme returns the trailing-window maximum (highest=true) or minimum of
// values. Entry i is defined for i >= period-1. A monotonic deque of indices keeps the
// cost linear in len(values).
func rollingExtreme(values []float64, period int, highest bool) types.Series {
	out := types.NewSeries(len(values))
	if period <= 0 {
		return out
	}

	better := func(a, b float64) bool {
		if highest {
			return a >= b
		}

		return a <= b
	}

	deque := make([]int, 0, period)

	for i, v := range values {
		// Drop the index that left the window
		if len(deque) > 0 && deque[0] <= i-period {
			deque = deque[1:]
		}

		for len(deque) > 0 && better(v, values[deque[len(deque)-1]]) {
			deque = deque[:len(deque)-1]
		}

		deque = append(deque, i)

		if i >= period-1 {
			out[i] = optional.Some(values[deque[0]])
		}
	}

	return out
}
