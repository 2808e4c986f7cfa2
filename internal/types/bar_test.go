package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func (suite *BarTestSuite) TestColumns() {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	series := BarSeries{
		{Time: start, Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Time: start.Add(24 * time.Hour), Open: 11, High: 13, Low: 10, Close: 12.5, Volume: 200},
	}

	suite.Equal(2, series.Len())
	suite.Equal([]time.Time{start, start.Add(24 * time.Hour)}, series.Times())
	suite.Equal([]float64{10, 11}, series.Opens())
	suite.Equal([]float64{12, 13}, series.Highs())
	suite.Equal([]float64{9, 10}, series.Lows())
	suite.Equal([]float64{11, 12.5}, series.Closes())
	suite.Equal([]float64{100, 200}, series.Volumes())
}

func (suite *BarTestSuite) TestEmptySeries() {
	var series BarSeries
	suite.Equal(0, series.Len())
	suite.Empty(series.Closes())
	suite.Empty(series.Times())
}
