package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// RSI calculates the Relative Strength Index using Wilder's smoothing.
//
// The first average gain and loss are plain means over the first period differences,
// so the first defined entry is at index period. After that
// avg = (avg*(period-1) + current)/period for gains and losses separately.
// Zero average loss and a flat series are resolved by rsiFromAverages.
func RSI(closes []float64, period int) types.Series {
	out := types.NewSeries(len(closes))
	if period <= 0 || len(closes) <= period {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0

	for i := 1; i <= period; i++ {
		gain, loss := splitChange(closes[i] - closes[i-1])
		avgGain += gain
		avgLoss += loss
	}

	p := float64(period)
	avgGain /= p
	avgLoss /= p
	out[period] = optional.Some(rsiFromAverages(avgGain, avgLoss))

	for i := period + 1; i < len(closes); i++ {
		gain, loss := splitChange(closes[i] - closes[i-1])
		avgGain = (avgGain*(p-1) + gain) / p
		avgLoss = (avgLoss*(p-1) + loss) / p
		out[i] = optional.Some(rsiFromAverages(avgGain, avgLoss))
	}

	return out
}

// splitChange returns the gain and the loss (as a positive magnitude) of one change.
func splitChange(delta float64) (float64, float64) {
	if delta > 0 {
		return delta, 0
	}

	return 0, -delta
}

// RSIIndicator emits the "rsi" series.
type RSIIndicator struct {
	period int
}

// NewRSI creates a new RSI indicator with the default period of 14.
func NewRSI() Indicator {
	return &RSIIndicator{
		period: 14,
	}
}

// Name returns the name of the indicator.
func (r *RSIIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RSIIndicator) Config(params ...any) error {
	if len(params) != 1 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 parameter: period (int)")
	}

	period, err := periodParam(params, 0, "period")
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// WarmUp returns period+1: period changes need period+1 closes.
func (r *RSIIndicator) WarmUp() int {
	return r.period + 1
}

// Compute implements Indicator.
func (r *RSIIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(r, series); err != nil {
		return err
	}

	result.Series[types.KeyRSI] = RSI(series.Closes(), r.period)

	return nil
}
