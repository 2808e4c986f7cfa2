package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Stochastic computes the %K/%D oscillator.
//
// %K[i] is defined for i >= kPeriod-1 and places closes[i] inside the highest high and
// lowest low of the last kPeriod bars on a 0-100 scale. A flat window yields
// StochasticFlatRangeValue. %D is the dPeriod SMA of %K and first appears at
// kPeriod-1 + dPeriod-1.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) types.StochasticSeries {
	n := len(closes)
	k := types.NewSeries(n)

	if kPeriod > 0 && len(highs) == n && len(lows) == n {
		highest := rollingExtreme(highs, kPeriod, true)
		lowest := rollingExtreme(lows, kPeriod, false)

		for i := kPeriod - 1; i < n; i++ {
			k[i] = optional.Some(clampPercent(stochasticK(closes[i], lowest[i].Unwrap(), highest[i].Unwrap())))
		}
	}

	return types.StochasticSeries{
		K: k,
		D: SMASeries(k, dPeriod),
	}
}

// clampPercent absorbs floating point drift at the edges of the 0-100 range, which can
// appear when close sits exactly on the window extreme.
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 100 {
		return 100
	}

	return v
}

// StochasticIndicator emits the "stochK" and "stochD" series.
type StochasticIndicator struct {
	kPeriod int
	dPeriod int
}

// NewStochastic creates a new stochastic oscillator with the default 14/3 periods.
func NewStochastic() Indicator {
	return &StochasticIndicator{
		kPeriod: 14,
		dPeriod: 3,
	}
}

// Name returns the name of the indicator.
func (s *StochasticIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeStochastic
}

// Config configures the oscillator. Expected parameters: kPeriod (int), dPeriod (int).
func (s *StochasticIndicator) Config(params ...any) error {
	if len(params) != 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 2 parameters: kPeriod (int), dPeriod (int)")
	}

	kPeriod, err := periodParam(params, 0, "kPeriod")
	if err != nil {
		return err
	}

	dPeriod, err := periodParam(params, 1, "dPeriod")
	if err != nil {
		return err
	}

	s.kPeriod = kPeriod
	s.dPeriod = dPeriod

	return nil
}

// WarmUp returns the bars needed for the first %D value.
func (s *StochasticIndicator) WarmUp() int {
	return s.kPeriod + s.dPeriod - 1
}

// Compute implements Indicator.
func (s *StochasticIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(s, series); err != nil {
		return err
	}

	stoch := Stochastic(series.Highs(), series.Lows(), series.Closes(), s.kPeriod, s.dPeriod)
	result.Stochastic = optional.Some(stoch)

	return nil
}
