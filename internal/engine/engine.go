// Package engine orchestrates the indicator computations over one bar series.
package engine

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/bars"
	"github.com/rxtech-lab/argo-indicators/internal/indicator"
	"github.com/rxtech-lab/argo-indicators/internal/logger"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"go.uber.org/zap"
)

// Engine runs the requested indicators over a validated series. It holds no per-call
// state and is safe for concurrent use.
type Engine struct {
	registry indicator.IndicatorRegistry
	log      *logger.Logger
}

// NewEngine creates an engine over registry. A nil registry uses
// indicator.NewDefaultRegistry and a nil logger discards output.
func NewEngine(registry indicator.IndicatorRegistry, log *logger.Logger) *Engine {
	if registry == nil {
		registry = indicator.NewDefaultRegistry()
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Engine{
		registry: registry,
		log:      log,
	}
}

// Kinds returns the indicator kinds the engine can compute.
func (e *Engine) Kinds() []types.IndicatorType {
	return e.registry.ListIndicators()
}

// ResolveKinds normalises a request: an empty list means every kind, duplicates are
// dropped keeping the first occurrence and unknown kinds fail with
// ErrCodeUnknownIndicator.
func ResolveKinds(kinds []types.IndicatorType) ([]types.IndicatorType, error) {
	if len(kinds) == 0 {
		return types.AllIndicatorTypes(), nil
	}

	seen := make(map[types.IndicatorType]bool, len(kinds))
	out := make([]types.IndicatorType, 0, len(kinds))

	for _, kind := range kinds {
		if !kind.Valid() {
			return nil, errors.Newf(errors.ErrCodeUnknownIndicator, "unknown indicator %q", kind)
		}

		if seen[kind] {
			continue
		}

		seen[kind] = true
		out = append(out, kind)
	}

	return out, nil
}

// Compute runs every requested indicator over series.
//
// Params, kinds and history length are all checked before any indicator runs, so the
// call returns either a full result or a single typed error. The context is checked
// between indicators; a cancelled computation fails with ErrCodeComputationCancelled.
func (e *Engine) Compute(ctx context.Context, series types.BarSeries, kinds []types.IndicatorType, params Params) (types.IndicatorResult, error) {
	start := time.Now()

	if err := params.Validate(); err != nil {
		return types.IndicatorResult{}, err
	}

	if series.Len() == 0 {
		return types.IndicatorResult{}, errors.New(errors.ErrCodeEmptySeries, "bar series is empty")
	}

	resolved, err := ResolveKinds(kinds)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	indicators, err := e.prepare(resolved, params)
	if err != nil {
		return types.IndicatorResult{}, err
	}

	if err := checkWarmUp(indicators, series.Len()); err != nil {
		return types.IndicatorResult{}, err
	}

	result := types.NewIndicatorResult(series.Times())

	for _, ind := range indicators {
		if err := ctx.Err(); err != nil {
			return types.IndicatorResult{}, errors.Wrap(errors.ErrCodeComputationCancelled, "computation cancelled", err)
		}

		if err := ind.Compute(series, &result); err != nil {
			if errors.GetCode(err) == errors.ErrCodeUnknown {
				return types.IndicatorResult{}, errors.Wrapf(errors.ErrCodeIndicatorCalculation, err, "failed to compute %s", ind.Name())
			}

			return types.IndicatorResult{}, err
		}
	}

	e.log.Debug("Indicators computed",
		zap.Int("bars", series.Len()),
		zap.Any("indicators", resolved),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

// ComputeBars validates raw bars and computes the requested indicators over them.
func (e *Engine) ComputeBars(ctx context.Context, raw []types.Bar, kinds []types.IndicatorType, params Params) (types.BarSeries, types.IndicatorResult, error) {
	series, err := bars.Validate(raw)
	if err != nil {
		return nil, types.IndicatorResult{}, err
	}

	result, err := e.Compute(ctx, series, kinds, params)
	if err != nil {
		return nil, types.IndicatorResult{}, err
	}

	return series, result, nil
}

// prepare creates a fresh configured indicator for every kind.
func (e *Engine) prepare(kinds []types.IndicatorType, params Params) ([]indicator.Indicator, error) {
	out := make([]indicator.Indicator, 0, len(kinds))

	for _, kind := range kinds {
		ind, err := e.registry.NewIndicator(kind)
		if err != nil {
			return nil, err
		}

		if err := ind.Config(params.Args(kind)...); err != nil {
			return nil, err
		}

		out = append(out, ind)
	}

	return out, nil
}

// checkWarmUp reports the indicator with the longest warm-up when n bars cannot
// satisfy it.
func checkWarmUp(indicators []indicator.Indicator, n int) error {
	var longest indicator.Indicator

	for _, ind := range indicators {
		if longest == nil || ind.WarmUp() > longest.WarmUp() {
			longest = ind
		}
	}

	if longest == nil || n >= longest.WarmUp() {
		return nil
	}

	return errors.NewInsufficientDataError(longest.WarmUp(), n, string(longest.Name()))
}

// CheckHistory reports whether n bars are enough to compute kinds with params. It
// fails the same way Compute would on a series of length n.
func (e *Engine) CheckHistory(kinds []types.IndicatorType, params Params, n int) error {
	if err := params.Validate(); err != nil {
		return err
	}

	resolved, err := ResolveKinds(kinds)
	if err != nil {
		return err
	}

	indicators, err := e.prepare(resolved, params)
	if err != nil {
		return err
	}

	return checkWarmUp(indicators, n)
}

// RequiredBars returns the number of bars needed to compute kinds with params.
func (e *Engine) RequiredBars(kinds []types.IndicatorType, params Params) (int, error) {
	resolved, err := ResolveKinds(kinds)
	if err != nil {
		return 0, err
	}

	indicators, err := e.prepare(resolved, params)
	if err != nil {
		return 0, err
	}

	required := 0
	for _, ind := range indicators {
		required = max(required, ind.WarmUp())
	}

	return required, nil
}
