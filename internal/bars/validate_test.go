package bars

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-indicators/internal/types"
	"github.com/rxtech-lab/argo-indicators/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type ValidateTestSuite struct {
	suite.Suite
	start time.Time
}

func TestValidateSuite(t *testing.T) {
	suite.Run(t, new(ValidateTestSuite))
}

func (suite *ValidateTestSuite) SetupTest() {
	suite.start = time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC)
}

func (suite *ValidateTestSuite) bar(i int, open, high, low, close float64) types.Bar {
	return types.Bar{
		Time:   suite.start.Add(time.Duration(i) * time.Minute),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 1000,
	}
}

func (suite *ValidateTestSuite) TestValidSeries() {
	raw := []types.Bar{
		suite.bar(0, 10, 11, 9, 10.5),
		suite.bar(1, 10.5, 12, 10, 11.5),
		suite.bar(2, 11.5, 11.5, 11.5, 11.5),
	}

	series, err := Validate(raw)
	suite.NoError(err)
	suite.Equal(3, series.Len())
	suite.Equal(raw[1], series[1])

	// The series is a copy; mutating the input does not reach it.
	raw[0].Close = 99
	suite.Equal(10.5, series[0].Close)
}

func (suite *ValidateTestSuite) TestEmpty() {
	_, err := Validate(nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *ValidateTestSuite) TestOutOfOrder() {
	raw := []types.Bar{
		suite.bar(1, 10, 11, 9, 10),
		suite.bar(0, 10, 11, 9, 10),
	}

	_, err := Validate(raw)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderData))
	suite.Contains(err.Error(), "bar 1")
}

func (suite *ValidateTestSuite) TestDuplicateTimestamp() {
	raw := []types.Bar{
		suite.bar(0, 10, 11, 9, 10),
		suite.bar(0, 10, 11, 9, 10),
	}

	_, err := Validate(raw)
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderData))
}

func (suite *ValidateTestSuite) TestOrderCheckedBeforeBarShape() {
	raw := []types.Bar{
		suite.bar(0, 10, 8, 9, 10),
		suite.bar(0, 10, 11, 9, 10),
	}

	_, err := Validate(raw)
	suite.True(errors.HasCode(err, errors.ErrCodeOutOfOrderData))
}

func (suite *ValidateTestSuite) TestMalformedBars() {
	cases := []struct {
		name string
		bar  types.Bar
		msg  string
	}{
		{"high below low", suite.bar(1, 10, 9, 10, 10), "high 9 < low 10"},
		{"high below close", suite.bar(1, 10, 11, 9, 12), "high 11 below"},
		{"low above open", suite.bar(1, 8, 11, 9, 10), "low 9 above"},
		{"zero price", suite.bar(1, 0, 11, 9, 10), "open 0 is not positive"},
		{"negative price", suite.bar(1, 10, 11, -1, 10), "low -1 is not positive"},
		{"nan close", suite.bar(1, 10, 11, 9, math.NaN()), "close is not finite"},
		{"inf high", suite.bar(1, 10, math.Inf(1), 9, 10), "high is not finite"},
	}

	for _, tc := range cases {
		raw := []types.Bar{suite.bar(0, 10, 11, 9, 10), tc.bar}

		_, err := Validate(raw)
		suite.Error(err, tc.name)
		suite.True(errors.HasCode(err, errors.ErrCodeMalformedBar), tc.name)
		suite.Contains(err.Error(), "bar 1", tc.name)
		suite.Contains(err.Error(), tc.msg, tc.name)
	}
}

func (suite *ValidateTestSuite) TestNegativeVolume() {
	b := suite.bar(0, 10, 11, 9, 10)
	b.Volume = -5

	_, err := Validate([]types.Bar{b})
	suite.True(errors.HasCode(err, errors.ErrCodeMalformedBar))
	suite.Contains(err.Error(), "volume")
}

func (suite *ValidateTestSuite) TestCheckBarAcceptsDoji() {
	suite.NoError(CheckBar(suite.bar(0, 5, 5, 5, 5)))
}
