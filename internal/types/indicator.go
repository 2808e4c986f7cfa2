package types

import (
	"slices"
	"strings"
)

type IndicatorType string

const (
	IndicatorTypeEMA        IndicatorType = "ema"
	IndicatorTypeSMA        IndicatorType = "sma"
	IndicatorTypeRSI        IndicatorType = "rsi"
	IndicatorTypeStochastic IndicatorType = "stochastic"
	IndicatorTypeMACD       IndicatorType = "macd"
	IndicatorTypePivot      IndicatorType = "pivot"
)

// AllIndicatorTypes lists every indicator the engine can compute, in the order the
// orchestrator runs them.
func AllIndicatorTypes() []IndicatorType {
	return []IndicatorType{
		IndicatorTypeEMA,
		IndicatorTypeSMA,
		IndicatorTypeRSI,
		IndicatorTypeStochastic,
		IndicatorTypeMACD,
		IndicatorTypePivot,
	}
}

// Valid reports whether t is one of AllIndicatorTypes.
func (t IndicatorType) Valid() bool {
	return slices.Contains(AllIndicatorTypes(), t)
}

// ParseIndicatorTypes splits a comma separated list such as "ema,rsi, macd".
// Names are lower-cased and blanks are dropped; validity is checked by the caller.
func ParseIndicatorTypes(list string) []IndicatorType {
	out := make([]IndicatorType, 0)

	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		out = append(out, IndicatorType(name))
	}

	return out
}
