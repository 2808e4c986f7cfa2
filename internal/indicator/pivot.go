package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
)

// Pivots detects swing highs on highs and swing lows on lows.
//
// Index i with window <= i < len-window is a swing high when highs[i] is strictly
// greater than every other high in [i-window, i+window]; swing lows use lows with
// strict less-than. Equal neighbours disqualify a candidate, so plateaus never yield
// adjacent duplicate pivots. Pivots are returned in index order.
func Pivots(highs, lows []float64, window int) ([]types.PivotPoint, []types.PivotPoint) {
	highIdx := swingPoints(highs, window, true)
	lowIdx := swingPoints(lows, window, false)

	highPoints := make([]types.PivotPoint, len(highIdx))
	for i, idx := range highIdx {
		highPoints[i] = types.PivotPoint{Index: idx, Price: highs[idx], Kind: types.PivotKindHigh}
	}

	lowPoints := make([]types.PivotPoint, len(lowIdx))
	for i, idx := range lowIdx {
		lowPoints[i] = types.PivotPoint{Index: idx, Price: lows[idx], Kind: types.PivotKindLow}
	}

	return highPoints, lowPoints
}

// swingPoints returns the indices that are strict local maxima (highest=true) or
// minima over a symmetric neighbourhood of window bars.
func swingPoints(values []float64, window int, highest bool) []int {
	out := make([]int, 0)
	if window <= 0 {
		return out
	}

	for i := window; i < len(values)-window; i++ {
		pivot := true

		for j := i - window; j <= i+window && pivot; j++ {
			if j == i {
				continue
			}

			if highest {
				pivot = values[i] > values[j]
			} else {
				pivot = values[i] < values[j]
			}
		}

		if pivot {
			out = append(out, i)
		}
	}

	return out
}

// TrendLineOf returns the line through the two most recent pivots by index, or None
// when fewer than two pivots exist.
func TrendLineOf(points []types.PivotPoint) optional.Option[types.TrendLine] {
	if len(points) < 2 {
		return optional.None[types.TrendLine]()
	}

	last, prev := -1, -1

	for i, p := range points {
		switch {
		case last < 0 || p.Index > points[last].Index:
			prev = last
			last = i
		case prev < 0 || p.Index > points[prev].Index:
			prev = i
		}
	}

	if points[prev].Index == points[last].Index {
		return optional.None[types.TrendLine]()
	}

	return optional.Some(types.TrendLine{From: points[prev], To: points[last]})
}

// ProjectTrendLine evaluates an optional line over n indices; a missing line projects
// to an all-None series.
func ProjectTrendLine(line optional.Option[types.TrendLine], n int) types.Series {
	if line.IsNone() {
		return types.NewSeries(n)
	}

	return line.Unwrap().Project(n)
}

// Channel returns the rolling highest high and lowest low over period bars.
func Channel(highs, lows []float64, period int) types.ChannelSeries {
	return types.ChannelSeries{
		Upper: rollingExtreme(highs, period, true),
		Lower: rollingExtreme(lows, period, false),
	}
}

// PivotIndicator emits swing pivots, the two trendlines through the latest pivots of
// each kind and the rolling high/low channel.
type PivotIndicator struct {
	window        int
	channelPeriod int
}

// NewPivot creates a new pivot indicator with a window of 5 and a 20 bar channel.
func NewPivot() Indicator {
	return &PivotIndicator{
		window:        5,
		channelPeriod: 20,
	}
}

// Name returns the name of the indicator.
func (p *PivotIndicator) Name() types.IndicatorType {
	return types.IndicatorTypePivot
}

// Config configures the pivot indicator. Expected parameters: window (int) and
// optionally channelPeriod (int).
func (p *PivotIndicator) Config(params ...any) error {
	if len(params) < 1 || len(params) > 2 {
		return errors.New(errors.ErrCodeMissingParameter, "Config expects 1 or 2 parameters: window (int), channelPeriod (int)")
	}

	window, err := periodParam(params, 0, "window")
	if err != nil {
		return err
	}

	channelPeriod := p.channelPeriod
	if len(params) == 2 {
		channelPeriod, err = periodParam(params, 1, "channelPeriod")
		if err != nil {
			return err
		}
	}

	p.window = window
	p.channelPeriod = channelPeriod

	return nil
}

// WarmUp returns the bars needed for one full pivot neighbourhood. The channel is not
// counted: it stays None until channelPeriod bars exist.
func (p *PivotIndicator) WarmUp() int {
	return 2*p.window + 1
}

// Compute implements Indicator.
func (p *PivotIndicator) Compute(series types.BarSeries, result *types.IndicatorResult) error {
	if err := checkHistory(p, series); err != nil {
		return err
	}

	highs := series.Highs()
	lows := series.Lows()
	highPoints, lowPoints := Pivots(highs, lows, p.window)

	for i := range highPoints {
		highPoints[i].Time = series[highPoints[i].Index].Time
	}

	for i := range lowPoints {
		lowPoints[i].Time = series[lowPoints[i].Index].Time
	}

	highLine := TrendLineOf(highPoints)
	lowLine := TrendLineOf(lowPoints)

	result.Pivot = optional.Some(types.PivotSeries{
		Highs:          highPoints,
		Lows:           lowPoints,
		HighLine:       highLine,
		LowLine:        lowLine,
		HighProjection: ProjectTrendLine(highLine, series.Len()),
		LowProjection:  ProjectTrendLine(lowLine, series.Len()),
		Channel:        Channel(highs, lows, p.channelPeriod),
	})

	return nil
}
