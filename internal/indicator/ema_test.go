package indicator

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

// EMATestSuite is a test suite for the EMA indicator
type EMATestSuite struct {
	suite.Suite
}

func TestEMASuite(t *testing.T) {
	suite.Run(t, new(EMATestSuite))
}

func (suite *EMATestSuite) TestSeedAndRecurrence() {
	got := EMA([]float64{1, 2, 3, 4, 5}, 3)

	suite.Require().Len(got, 5)
	suite.True(got[0].IsNone())
	suite.True(got[1].IsNone())
	suite.InDelta(2.0, got[2].Unwrap(), 1e-12)
	suite.InDelta(3.0, got[3].Unwrap(), 1e-12)
	suite.InDelta(4.0, got[4].Unwrap(), 1e-12)
}

func (suite *EMATestSuite) TestConstantSeries() {
	got := EMA(constant(42.5, 30), 10)

	suite.Equal(9, got.FirstDefined())
	for _, v := range definedValues(got) {
		suite.InDelta(42.5, v, 1e-9)
	}
}

func (suite *EMATestSuite) TestPeriodOneFollowsInput() {
	values := wave(100, 20)
	got := EMA(values, 1)

	for i, v := range values {
		suite.InDelta(v, got[i].Unwrap(), 1e-12)
	}
}

func (suite *EMATestSuite) TestShortInput() {
	got := EMA([]float64{1, 2}, 3)

	suite.Len(got, 2)
	suite.Equal(0, got.Defined())
}

func (suite *EMATestSuite) TestInvalidPeriod() {
	got := EMA([]float64{1, 2, 3}, 0)

	suite.Len(got, 3)
	suite.Equal(0, got.Defined())
}

func (suite *EMATestSuite) TestSeriesSkipsNonePrefix() {
	input := types.Series{
		optional.None[float64](),
		optional.None[float64](),
		optional.Some(2.0),
		optional.Some(4.0),
		optional.Some(6.0),
	}

	got := EMASeries(input, 2)

	suite.True(got[2].IsNone())
	suite.InDelta(3.0, got[3].Unwrap(), 1e-12)
	// k = 2/3
	suite.InDelta(6*2.0/3+3.0/3, got[4].Unwrap(), 1e-12)
}

func (suite *EMATestSuite) TestConfig() {
	ema := NewEMA().(*EMAIndicator)
	suite.Equal(50, ema.WarmUp())

	suite.NoError(ema.Config(10, 30, 10))
	suite.Equal([]int{10, 30}, ema.periods)
	suite.Equal(30, ema.WarmUp())

	err := ema.Config()
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	err = ema.Config("20")
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidType))
	suite.Contains(err.Error(), "expected int")

	err = ema.Config(-1)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPeriod))
	suite.Contains(err.Error(), "must be a positive integer")
}

func (suite *EMATestSuite) TestCompute() {
	series := barsFromCloses(wave(100, 60))
	result := types.NewIndicatorResult(series.Times())

	ema := NewEMA()
	suite.Require().NoError(ema.Compute(series, &result))

	suite.Contains(result.Series, "ema20")
	suite.Contains(result.Series, "ema50")
	suite.Len(result.Series["ema20"], 60)
	suite.Equal(19, result.Series["ema20"].FirstDefined())
	suite.Equal(49, result.Series["ema50"].FirstDefined())
}

func (suite *EMATestSuite) TestComputeInsufficientData() {
	series := barsFromCloses(wave(100, 49))
	result := types.NewIndicatorResult(series.Times())

	err := NewEMA().Compute(series, &result)
	suite.Error(err)
	suite.True(errors.IsInsufficientDataError(err))
	suite.Equal(errors.ErrCodeInsufficientData, errors.GetCode(err))
	suite.Empty(result.Series)
}
