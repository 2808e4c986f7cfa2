package types

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestNewSeriesIsAllNone() {
	s := NewSeries(4)
	suite.Len(s, 4)
	suite.Equal(-1, s.FirstDefined())
	suite.Equal(0, s.Defined())
	suite.True(s.Last().IsNone())
}

func (suite *SeriesTestSuite) TestDenseSeries() {
	s := DenseSeries([]float64{1, 2, 3})
	suite.Equal(0, s.FirstDefined())
	suite.Equal(3, s.Defined())
	suite.Equal([]float64{1, 2, 3}, definedValues(s))
	suite.Equal(3.0, s.Last().Unwrap())
}

func (suite *SeriesTestSuite) TestPaddedSeries() {
	s := Series{optional.None[float64](), optional.None[float64](), optional.Some(2.5), optional.Some(3.5)}
	suite.Equal(2, s.FirstDefined())
	suite.Equal(2, s.Defined())
	suite.Equal([]float64{2.5, 3.5}, definedValues(s))
}

func (suite *SeriesTestSuite) TestEmptyLast() {
	suite.True(Series{}.Last().IsNone())
}

func definedValues(s Series) []float64 {
	out := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsSome() {
			out = append(out, v.Unwrap())
		}
	}

	return out
}
