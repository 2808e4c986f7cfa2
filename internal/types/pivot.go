package types

import (
	"time"

	"github.com/moznion/go-optional"
)

type PivotKind string

const (
	PivotKindHigh PivotKind = "high"
	PivotKindLow  PivotKind = "low"
)

// PivotPoint marks a swing extremum by its position in the BarSeries.
type PivotPoint struct {
	Index int       `json:"index"`
	Time  time.Time `json:"time"`
	Price float64   `json:"price"`
	Kind  PivotKind `json:"kind"`
}

// TrendLine is the line through two pivots of the same kind. Slope and intercept are
// measured in index space and derived on demand.
type TrendLine struct {
	From PivotPoint `json:"from"`
	To   PivotPoint `json:"to"`
}

// Slope returns the price change per bar.
func (l TrendLine) Slope() float64 {
	return (l.To.Price - l.From.Price) / float64(l.To.Index-l.From.Index)
}

// Intercept returns the line value at index 0.
func (l TrendLine) Intercept() float64 {
	return l.From.Price - l.Slope()*float64(l.From.Index)
}

// At returns the line value at bar index i, interpolating between the two pivots and
// extrapolating outside them.
func (l TrendLine) At(i int) float64 {
	return l.From.Price + l.Slope()*float64(i-l.From.Index)
}

// Project evaluates the line at every index of a series of length n.
func (l TrendLine) Project(n int) Series {
	out := NewSeries(n)
	for i := range out {
		out[i] = optional.Some(l.At(i))
	}

	return out
}
