package types

import "time"

// Bar is one OHLCV record. Bars are produced by a bar source or a request body and are
// never modified afterwards.
type Bar struct {
	Time   time.Time `json:"time" yaml:"time" csv:"time"`
	Open   float64   `json:"open" yaml:"open" csv:"open"`
	High   float64   `json:"high" yaml:"high" csv:"high"`
	Low    float64   `json:"low" yaml:"low" csv:"low"`
	Close  float64   `json:"close" yaml:"close" csv:"close"`
	Volume float64   `json:"volume" yaml:"volume" csv:"volume"`
}

// BarSeries is a chronologically ordered sequence of bars with strictly increasing
// timestamps. Obtain one from bars.Validate; the engine treats it as read-only.
type BarSeries []Bar

// Len returns the number of bars.
func (s BarSeries) Len() int {
	return len(s)
}

// Times returns the bar timestamps.
func (s BarSeries) Times() []time.Time {
	out := make([]time.Time, len(s))
	for i, b := range s {
		out[i] = b.Time
	}

	return out
}

// Opens returns the open prices.
func (s BarSeries) Opens() []float64 {
	return s.column(func(b Bar) float64 { return b.Open })
}

// Highs returns the high prices.
func (s BarSeries) Highs() []float64 {
	return s.column(func(b Bar) float64 { return b.High })
}

// Lows returns the low prices.
func (s BarSeries) Lows() []float64 {
	return s.column(func(b Bar) float64 { return b.Low })
}

// Closes returns the close prices.
func (s BarSeries) Closes() []float64 {
	return s.column(func(b Bar) float64 { return b.Close })
}

// Volumes returns the traded volumes.
func (s BarSeries) Volumes() []float64 {
	return s.column(func(b Bar) float64 { return b.Volume })
}

func (s BarSeries) column(get func(Bar) float64) []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = get(b)
	}

	return out
}
