package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// MACD computes the Moving Average Convergence Divergence line, its signal line and
// the histogram.
//
// Both EMAs run over the full close series with their own warm-up, so the line is
// defined from index slowPeriod-1 on (given fastPeriod < slowPeriod). The signal is an
// EMA of the padded line that skips its None prefix, which puts its first value at
// slowPeriod-1 + signalPeriod-1. The histogram is defined where both are.
func MACD(closes []float64, fastPeriod, slowPeriod, signalPeriod int) types.MACDSeries {
	fast := EMA(closes, fastPeriod)
	slow := EMA(closes, slowPeriod)
	line := subtract(fast, slow)
	signal := EMASeries(line, signalPeriod)

	return types.MACDSeries{
		Line:      line,
		Signal:    signal,
		Histogram: subtract(line, signal),
	}
}

// subtract returns a-b where both operands are defined and None elsewhere.
func subtract(a, b types.Series) types.Series {
	out := types.NewSeries(len(a))
	for i := range a {
		if i >= len(b) || a[i].IsNone() || b[i].IsNone() {
			continue
		}

		out[i] = optional.Some(a[i].Unwrap() - b[i].Unwrap())
	}

	return out
}

// MACDIndicator emits the "macdLine", "macdSignal" and "macdHist" series.
type MACDIndicator struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD indicator with default configuration.
func NewMACD() Indicator {
	return &MACDIndicator{
		fastPeriod:   12, // Default fast period
		slowPeriod:   26, // Default slow period
		signalPeriod: 9,  // Default signal period
	}
}

// Name returns the name of the indicator.
func (m *MACDIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

// Config configures the MACD indicator. Expected parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int).
// fastPeriod must be shorter than slowPeriod.
func (m *MACDIndicator) Config(params ...any) error {
	if len(params) != 3 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 3 parameters: fastPeriod (int), slowPeriod (int), signalPeriod (int)")
	}

	fastPeriod, err := periodParam(params, 0, "fastPeriod")
	if err != nil {
		return err
	}

	slowPeriod, err := periodParam(params, 1, "slowPeriod")
	if err != nil {
		return err
	}

	signalPeriod, err := periodParam(params, 2, "signalPeriod")
	if err != nil {
		return err
	}

	if fastPeriod >= slowPeriod {
		return errors.Newf(errors.ErrCodeInvalidParameter, "fastPeriod (%d) must be less than slowPeriod (%d)", fastPeriod, slowPeriod)
	}

	m.fastPeriod = fastPeriod
	m.slowPeriod = slowPeriod
	m.signalPeriod = signalPeriod

	return nil
}

// WarmUp returns the bars needed for the first signal value.
func (m *MACDIndicator) WarmUp() int {
	return m.slowPeriod + m.signalPeriod - 1
}

// Compute implements Indicator.
func (m *MACDIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(m, series); err != nil {
		return err
	}

	result.MACD = optional.Some(MACD(series.Closes(), m.fastPeriod, m.slowPeriod, m.signalPeriod))

	return nil
}
