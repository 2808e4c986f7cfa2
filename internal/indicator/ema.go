package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
)

// EMA returns the exponential moving average of values.
//
// The first period-1 entries are None. Entry period-1 is seeded with the simple average
// of the first period values; afterwards ema[i] = values[i]*k + ema[i-1]*(1-k) with
// k = 2/(period+1), which matches pandas ewm(span=period, adjust=False) once seeded.
func EMA(values []float64, period int) types.Series {
	return EMASeries(types.DenseSeries(values), period)
}

// EMASeries computes an EMA over a padded series. None entries produce None and do not
// advance the recurrence, so the seed is taken over the first period defined values
// wherever they start. This lets MACD smooth its line without re-indexing it.
func EMASeries(values types.Series, period int) types.Series {
	out := types.NewSeries(len(values))
	if period <= 0 {
		return out
	}

	multiplier := 2.0 / float64(period+1)
	count := 0
	sum := 0.0
	current := 0.0

	for i, v := range values {
		if v.IsNone() {
			continue
		}

		price := v.Unwrap()
		count++

		if count <= period {
			// Accumulate for the SMA seed
			sum += price
			if count == period {
				current = sum / float64(period)
				out[i] = optional.Some(current)
			}

			continue
		}

		current = price*multiplier + current*(1-multiplier)
		out[i] = optional.Some(current)
	}

	return out
}

// EMAIndicator emits one EMA series per configured period, keyed "ema<period>".
type EMAIndicator struct {
	periods []int
}

// NewEMA creates a new EMA indicator with the default 20 and 50 periods.
func NewEMA() Indicator {
	return &EMAIndicator{
		periods: []int{20, 50},
	}
}

// Name returns the name of the indicator.
func (e *EMAIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

// Config configures the EMA indicator. Expected parameters: one or more periods (int).
func (e *EMAIndicator) Config(params ...any) error {
	periods, err := periodList(params)
	if err != nil {
		return err
	}

	e.periods = periods

	return nil
}

// WarmUp returns the longest configured period.
func (e *EMAIndicator) WarmUp() int {
	return maxInt(e.periods...)
}

// Compute implements Indicator.
func (e *EMAIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(e, series); err != nil {
		return err
	}

	closes := series.Closes()
	for _, period := range e.periods {
		result.Series[types.EMAKey(period)] = EMA(closes, period)
	}

	return nil
}
