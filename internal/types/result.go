package types

import (
	"fmt"
	"time"

	"github.com/moznion/go-optional"
)

// Wire names of the series emitted by the engine.
const (
	KeyRSI          = "rsi"
	KeyStochK       = "stochK"
	KeyStochD       = "stochD"
	KeyMACDLine     = "macdLine"
	KeyMACDSignal   = "macdSignal"
	KeyMACDHist     = "macdHist"
	KeyTrendHigh    = "trendHigh"
	KeyTrendLow     = "trendLow"
	KeyChannelUpper = "channelUpper"
	KeyChannelLower = "channelLower"
	KeyPivotHighs   = "pivotHighs"
	KeyPivotLows    = "pivotLows"
	KeyTrendLines   = "trendLines"
)

// EMAKey returns the result key of an EMA series, e.g. "ema20".
func EMAKey(period int) string {
	return fmt.Sprintf("ema%d", period)
}

// SMAKey returns the result key of an SMA series, e.g. "sma20".
func SMAKey(period int) string {
	return fmt.Sprintf("sma%d", period)
}

type MACDSeries struct {
	Line      Series
	Signal    Series
	Histogram Series
}

type StochasticSeries struct {
	K Series
	D Series
}

// ChannelSeries is the rolling highest-high / lowest-low envelope.
type ChannelSeries struct {
	Upper Series
	Lower Series
}

type PivotSeries struct {
	Highs    []PivotPoint
	Lows     []PivotPoint
	HighLine optional.Option[TrendLine]
	LowLine  optional.Option[TrendLine]
	// Projected trendlines, None everywhere when the line does not exist.
	HighProjection Series
	LowProjection  Series
	Channel        ChannelSeries
}

// IndicatorResult holds every series computed for one BarSeries. All series share the
// bar index axis: len(series) == len(Times).
type IndicatorResult struct {
	Times      []time.Time
	Series     map[string]Series
	MACD       optional.Option[MACDSeries]
	Stochastic optional.Option[StochasticSeries]
	Pivot      optional.Option[PivotSeries]
}

// NewIndicatorResult creates an empty result over the given timestamps.
func NewIndicatorResult(times []time.Time) IndicatorResult {
	return IndicatorResult{
		Times:      times,
		Series:     make(map[string]Series),
		MACD:       optional.None[MACDSeries](),
		Stochastic: optional.None[StochasticSeries](),
		Pivot:      optional.None[PivotSeries](),
	}
}

// Len returns the length of the shared index axis.
func (r IndicatorResult) Len() int {
	return len(r.Times)
}

// Flatten returns every series of the result keyed by its wire name.
func (r IndicatorResult) Flatten() map[string]Series {
	out := make(map[string]Series, len(r.Series)+10)
	for k, v := range r.Series {
		out[k] = v
	}

	if r.MACD.IsSome() {
		m := r.MACD.Unwrap()
		out[KeyMACDLine] = m.Line
		out[KeyMACDSignal] = m.Signal
		out[KeyMACDHist] = m.Histogram
	}

	if r.Stochastic.IsSome() {
		s := r.Stochastic.Unwrap()
		out[KeyStochK] = s.K
		out[KeyStochD] = s.D
	}

	if r.Pivot.IsSome() {
		p := r.Pivot.Unwrap()
		out[KeyTrendHigh] = p.HighProjection
		out[KeyTrendLow] = p.LowProjection
		out[KeyChannelUpper] = p.Channel.Upper
		out[KeyChannelLower] = p.Channel.Lower
	}

	return out
}
