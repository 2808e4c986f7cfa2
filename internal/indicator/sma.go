package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// SMA returns the simple moving average of values over a trailing window of period.
// Entry i is defined for i >= period-1.
func SMA(values []float64, period int) types.Series {
	return SMASeries(types.DenseSeries(values), period)
}

// SMASeries computes a simple moving average over a padded series. None entries are
// skipped without entering the window and produce None; a defined output needs period
// defined inputs. The window keeps a running sum and subtracts the value that leaves it.
func SMASeries(values types.Series, period int) types.Series {
	out := types.NewSeries(len(values))
	if period <= 0 {
		return out
	}

	window := make([]float64, period) // circular buffer of the last period inputs
	idx := 0
	count := 0
	sum := 0.0

	for i, v := range values {
		if v.IsNone() {
			continue
		}

		price := v.Unwrap()
		if count >= period {
			sum -= window[idx]
		}

		window[idx] = price
		sum += price
		idx = (idx + 1) % period
		count++

		if count >= period {
			out[i] = optional.Some(sum / float64(period))
		}
	}

	return out
}

// SMAIndicator emits one SMA series per configured period, keyed "sma<period>".
type SMAIndicator struct {
	periods []int
}

// NewSMA creates a new SMA indicator with a default period of 20.
func NewSMA() Indicator {
	return &SMAIndicator{
		periods: []int{20},
	}
}

// Name returns the name of the indicator.
func (s *SMAIndicator) Name() types.IndicatorType {
	return types.IndicatorTypeSMA
}

// Config configures the SMA indicator. Expected parameters: one or more periods (int).
func (s *SMAIndicator) Config(params ...any) error {
	periods, err := periodList(params)
	if err != nil {
		return err
	}

	s.periods = periods

	return nil
}

// WarmUp returns the longest configured period.
func (s *SMAIndicator) WarmUp() int {
	return maxInt(s.periods...)
}

// Compute implements Indicator.
func (s *SMAIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(s, series); err != nil {
		return err
	}

	closes := series.Closes()
	for _, period := range s.periods {
		result.Series[types.SMAKey(period)] = SMA(closes, period)
	}

	return nil
}

// periodList reads every parameter as a positive period. At least one is required and
// duplicates are dropped while keeping the first occurrence order.
func periodList(params []any) ([]int, error) {
	if len(params) == 0 {
		return nil, errors.New(errors.ErrCodeMissingParameter, "Config expects at least 1 parameter: period (int)")
	}

	seen := make(map[int]bool, len(params))
	periods := make([]int, 0, len(params))

	for i := range params {
		period, err := periodParam(params, i, "period")
		if err != nil {
			return nil, err
		}

		if seen[period] {
			continue
		}

		seen[period] = true
		periods = append(periods, period)
	}

	return periods, nil
}

func maxInt(values ...int) int {
	m := 0
	for _, v := range values {
		m = max(m, v)
	}

	return m
}
