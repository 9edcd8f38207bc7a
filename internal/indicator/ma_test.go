package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type MATestSuite struct {
	suite.Suite
}

func (suite *MATestSuite) TestSMAColumnNameCarriesPeriod() {
	series, err := closeSeries(10, 20, 30, 40)
	suite.Require().NoError(err)

	columns, err := NewSMA().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	column, ok := columns["sma_3"]
	suite.Require().True(ok, "column should be named after the period")
	suite.True(math.IsNaN(column.Values[1]))
	suite.Equal(20.0, column.Values[2])
	suite.Equal(30.0, column.Values[3])
}

func (suite *MATestSuite) TestEMAConvergesOnConstantSeries() {
	series, err := closeSeries(10, 10, 10, 10, 10)
	suite.Require().NoError(err)

	columns, err := NewEMA().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	column, ok := columns["ema_3"]
	suite.Require().True(ok)
	suite.True(math.IsNaN(column.Values[1]))

	for i := 2; i < 5; i++ {
		suite.Equal(10.0, column.Values[i], "bar %d", i)
	}
}

func (suite *MATestSuite) TestATRConstantRange() {
	series, err := closeSeries(10, 10, 10, 10, 10, 10)
	suite.Require().NoError(err)

	columns, err := NewATR().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	atr := columns["atr"]
	suite.True(math.IsNaN(atr.Values[1]))

	// Every bar spans exactly two points with no gaps.
	for i := 2; i < 6; i++ {
		suite.Equal(2.0, atr.Values[i], "bar %d", i)
	}
}

func (suite *MATestSuite) TestBollingerBandsCollapseOnFlatSeries() {
	series, err := closeSeries(10, 10, 10, 10)
	suite.Require().NoError(err)

	columns, err := NewBollingerBands().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	suite.Equal(10.0, columns["bollinger_bands_middle"].Values[3])
	suite.Equal(10.0, columns["bollinger_bands_upper"].Values[3])
	suite.Equal(10.0, columns["bollinger_bands_lower"].Values[3])
	suite.False(columns["bollinger_bands_upper"].Available(1))
}

func TestMASuite(t *testing.T) {
	suite.Run(t, new(MATestSuite))
}
