package indicator

import (
	"math"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
)

var testStart = time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

// barsFromCloses builds one-minute bars whose high and low sit one point around close.
func barsFromCloses(closes []float64) types.BarSeries {
	series := make(types.BarSeries, len(closes))
	for i, c := range closes {
		series[i] = types.Bar{
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}

	return series
}

// ramp returns n values starting at start and stepping by step.
func ramp(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}

	return out
}

// wave returns n values oscillating around base, enough to exercise every branch of
// the recurrences.
func wave(base float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = base + 10*math.Sin(float64(i)/3) + 3*math.Cos(float64(i)/7)
	}

	return out
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}

	return out
}

func negate(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = -v
	}

	return out
}

func indices(points []types.PivotPoint) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Index
	}

	return out
}

// definedValues returns the Some entries of s in index order.
func definedValues(s types.Series) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsSome() {
			out = append(out, v.Unwrap())
		}
	}

	return out
}
