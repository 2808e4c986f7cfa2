package indicator

// Division guards. Each recurrence that can divide by zero resolves the degenerate case
// through one of these policies instead of producing NaN or Inf.

const (
	// RSINoLossValue is the RSI reported when the average loss is zero and the
	// average gain is positive.
	RSINoLossValue = 100.0
	// RSIFlatValue is the RSI reported when both averages are zero (a flat series).
	RSIFlatValue = 50.0
	// StochasticFlatRangeValue is the %K reported when the highest high equals the
	// lowest low of the window.
	StochasticFlatRangeValue = 0.0
)

// rsiFromAverages applies the RSI formula with the zero-loss and flat-series guards.
func rsiFromAverages(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return RSIFlatValue
		}

		return RSINoLossValue
	}

	rs := avgGain / avgLoss

	return 100 - 100/(1+rs)
}

// stochasticK places close inside the [lowest, highest] range on a 0-100 scale,
// applying the flat-range guard.
func stochasticK(close, lowest, highest float64) float64 {
	span := highest - lowest
	if span == 0 {
		return StochasticFlatRangeValue
	}

	return 100 * (close - lowest) / span
}
