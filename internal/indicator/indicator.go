// Package indicator implements the technical indicators computed by the engine.
//
// Every indicator exists twice: as a pure function over float slices (EMA, SMA, RSI,
// Stochastic, MACD, Pivots) and as an Indicator adapter that is configured with
// periods and writes its series into a types.IndicatorResult. Adapters are created
// fresh for every computation, so no state is shared between requests.
package indicator

import (
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Indicator is implemented by every indicator the orchestrator can run.
type Indicator interface {
	// Name returns the indicator type
	Name() types.IndicatorType
	// Config sets the indicator periods; see each implementation for the expected parameters
	Config(params ...any) error
	// WarmUp returns the number of bars needed for every output series to have at least
	// one defined entry
	WarmUp() int
	// Compute writes the indicator output for series into result
	Compute(series types.BarSeries, result *types.IndicatorResult) error
}

// periodParam reads params[i] as a positive period.
func periodParam(params []any, i int, name string) (int, error) {
	if i >= len(params) {
		return 0, errors.Newf(errors.ErrCodeMissingParameter, "missing %s parameter", name)
	}

	period, ok := params[i].(int)
	if !ok {
		return 0, errors.Newf(errors.ErrCodeInvalidType, "invalid type for %s parameter, expected int", name)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, period)
	}

	return period, nil
}

// checkHistory fails with InsufficientDataError when series is shorter than required.
func checkHistory(ind Indicator, series types.BarSeries) error {
	required := ind.WarmUp()
	if series.Len() < required {
		return errors.NewInsufficientDataError(required, series.Len(), string(ind.Name()))
	}

	return nil
}
