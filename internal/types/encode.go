package types

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Encode converts the result into the JSON-ready form consumed by chart clients:
// every series becomes an array of the same length as the bar axis with nil for
// undefined entries. Values are rounded half away from zero to precision decimal
// places; precision <= 0 leaves them untouched. Non-finite values are emitted as nil.
func (r IndicatorResult) Encode(precision int) map[string]any {
	flat := r.Flatten()
	out := make(map[string]any, len(flat)+3)

	for key, s := range flat {
		out[key] = EncodeSeries(s, precision)
	}

	if r.Pivot.IsSome() {
		p := r.Pivot.Unwrap()
		out[KeyPivotHighs] = roundPivots(p.Highs, precision)
		out[KeyPivotLows] = roundPivots(p.Lows, precision)

		lines := map[string]any{}
		if p.HighLine.IsSome() {
			lines[string(PivotKindHigh)] = p.HighLine.Unwrap()
		}

		if p.LowLine.IsSome() {
			lines[string(PivotKindLow)] = p.LowLine.Unwrap()
		}

		out[KeyTrendLines] = lines
	}

	return out
}

// Keys returns the sorted series names present in the result.
func (r IndicatorResult) Keys() []string {
	flat := r.Flatten()
	keys := make([]string, 0, len(flat))

	for k := range flat {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// EncodeSeries converts one series to nullable floats.
func EncodeSeries(s Series, precision int) []*float64 {
	out := make([]*float64, len(s))

	for i, v := range s {
		if v.IsNone() {
			continue
		}

		f, ok := RoundValue(v.Unwrap(), precision)
		if !ok {
			continue
		}

		out[i] = &f
	}

	return out
}

// RoundValue rounds v to precision decimal places. It reports false for NaN and ±Inf.
func RoundValue(v float64, precision int) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}

	if precision <= 0 {
		return v, true
	}

	f, _ := decimal.NewFromFloat(v).Round(int32(precision)).Float64()

	return f, true
}

func roundPivots(points []PivotPoint, precision int) []PivotPoint {
	out := make([]PivotPoint, len(points))
	for i, p := range points {
		out[i] = p
		if f, ok := RoundValue(p.Price, precision); ok {
			out[i].Price = f
		}
	}

	return out
}
