package types

import "github.com/moznion/go-optional"

// Series is an indicator output aligned with a BarSeries: entry i belongs to bar i.
// Entries in the warm-up region are None.
type Series []optional.Option[float64]

// NewSeries returns a series of n None entries.
func NewSeries(n int) Series {
	return make(Series, n)
}

// DenseSeries wraps every value in Some.
func DenseSeries(values []float64) Series {
	out := make(Series, len(values))
	for i, v := range values {
		out[i] = optional.Some(v)
	}

	return out
}

// FirstDefined returns the index of the first Some entry, or -1 when every entry is None.
func (s Series) FirstDefined() int {
	for i, v := range s {
		if v.IsSome() {
			return i
		}
	}

	return -1
}

// Defined returns the number of Some entries.
func (s Series) Defined() int {
	n := 0

	for _, v := range s {
		if v.IsSome() {
			n++
		}
	}

	return n
}

// Last returns the last entry of the series, None for an empty series.
func (s Series) Last() optional.Option[float64] {
	if len(s) == 0 {
		return optional.None[float64]()
	}

	return s[len(s)-1]
}
