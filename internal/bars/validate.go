// Package bars validates raw OHLCV input before any indicator runs.
//
// Validation never repairs input: out-of-order rows are not re-sorted and bad rows
// are not dropped, because either would shift the index axis that every indicator
// series is aligned to.
package bars

import (
	"math"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Validate checks raw bars and returns them as a BarSeries.
//
// Checks run in order over the whole input: the series is non-empty, timestamps are
// strictly increasing, then every bar is finite with positive prices and a consistent
// high/low envelope. The first failure is returned and nothing else.
func Validate(raw []types.Bar) (types.BarSeries, error) {
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	for i := 1; i < len(raw); i++ {
		if !raw[i].Time.After(raw[i-1].Time) {
			return nil, errors.Newf(errors.ErrCodeOutOfOrderData,
				"bar %d: timestamp %s is not after bar %d timestamp %s",
				i, raw[i].Time.UTC().Format("2006-01-02T15:04:05Z07:00"),
				i-1, raw[i-1].Time.UTC().Format("2006-01-02T15:04:05Z07:00"))
		}
	}

	for i, bar := range raw {
		if err := CheckBar(bar); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMalformedBar, err, "bar %d", i)
		}
	}

	series := make(types.BarSeries, len(raw))
	copy(series, raw)

	return series, nil
}

// CheckBar reports the first OHLCV inconsistency of a single bar.
func CheckBar(bar types.Bar) error {
	prices := []struct {
		name  string
		value float64
	}{
		{"open", bar.Open},
		{"high", bar.High},
		{"low", bar.Low},
		{"close", bar.Close},
	}

	for _, p := range prices {
		if !isFinite(p.value) {
			return errors.Newf(errors.ErrCodeMalformedBar, "%s is not finite", p.name)
		}

		if p.value <= 0 {
			return errors.Newf(errors.ErrCodeMalformedBar, "%s %g is not positive", p.name, p.value)
		}
	}

	if !isFinite(bar.Volume) || bar.Volume < 0 {
		return errors.Newf(errors.ErrCodeMalformedBar, "volume %g is not a finite non-negative number", bar.Volume)
	}

	if bar.High < bar.Low {
		return errors.Newf(errors.ErrCodeMalformedBar, "high %g < low %g", bar.High, bar.Low)
	}

	if bar.High < math.Max(bar.Open, bar.Close) {
		return errors.Newf(errors.ErrCodeMalformedBar, "high %g below open %g or close %g", bar.High, bar.Open, bar.Close)
	}

	if bar.Low > math.Min(bar.Open, bar.Close) {
		return errors.Newf(errors.ErrCodeMalformedBar, "low %g above open %g or close %g", bar.Low, bar.Open, bar.Close)
	}

	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
