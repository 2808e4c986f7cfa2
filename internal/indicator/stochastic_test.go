package indicator

import (
	"testing"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StochasticTestSuite struct {
	suite.Suite
}

func TestStochasticSuite(t *testing.T) {
	suite.Run(t, new(StochasticTestSuite))
}

func (suite *StochasticTestSuite) TestKAndD() {
	highs := []float64{3, 4, 5, 6}
	lows := []float64{1, 2, 3, 4}
	closes := []float64{2, 3, 5, 4}

	got := Stochastic(highs, lows, closes, 3, 2)

	suite.True(got.K[1].IsNone())
	suite.InDelta(100.0, got.K[2].Unwrap(), 1e-12)
	suite.InDelta(50.0, got.K[3].Unwrap(), 1e-12)
	suite.True(got.D[2].IsNone())
	suite.InDelta(75.0, got.D[3].Unwrap(), 1e-12)
}

func (suite *StochasticTestSuite) TestCloseAtLowest() {
	highs := []float64{5, 6, 7}
	lows := []float64{3, 2, 1}
	closes := []float64{4, 3, 1}

	got := Stochastic(highs, lows, closes, 3, 1)

	suite.InDelta(0.0, got.K[2].Unwrap(), 1e-12)
	suite.InDelta(0.0, got.D[2].Unwrap(), 1e-12)
}

func (suite *StochasticTestSuite) TestFlatRange() {
	flat := constant(10, 20)

	got := Stochastic(flat, flat, flat, 14, 3)

	suite.Equal(13, got.K.FirstDefined())
	suite.Equal(15, got.D.FirstDefined())
	for _, v := range definedValues(got.K) {
		suite.Equal(StochasticFlatRangeValue, v)
	}
}

func (suite *StochasticTestSuite) TestBounded() {
	series := barsFromCloses(wave(100, 150))

	got := Stochastic(series.Highs(), series.Lows(), series.Closes(), 14, 3)

	suite.Equal(150-13, got.K.Defined())
	suite.Equal(150-15, got.D.Defined())
	for _, v := range append(definedValues(got.K), definedValues(got.D)...) {
		suite.GreaterOrEqual(v, 0.0)
		suite.LessOrEqual(v, 100.0)
	}
}

func (suite *StochasticTestSuite) TestMismatchedInputs() {
	got := Stochastic([]float64{1, 2}, []float64{1}, []float64{1, 2}, 1, 1)

	suite.Len(got.K, 2)
	suite.Equal(0, got.K.Defined())
}

func (suite *StochasticTestSuite) TestConfig() {
	stoch := NewStochastic()
	suite.Equal(16, stoch.WarmUp())

	suite.NoError(stoch.Config(5, 3))
	suite.Equal(7, stoch.WarmUp())

	err := stoch.Config(5)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = stoch.Config(5, "3")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
	suite.Contains(err.Error(), "dPeriod")
}

func (suite *StochasticTestSuite) TestCompute() {
	series := barsFromCloses(wave(100, 30))
	result := types.NewIndicatorResult(series.Times())

	suite.Require().NoError(NewStochastic().Compute(series, &result))
	suite.Require().True(result.Stochastic.IsSome())

	flat := result.Flatten()
	suite.Contains(flat, types.KeyStochK)
	suite.Contains(flat, types.KeyStochD)
	suite.Len(flat[types.KeyStochD], 30)
}
