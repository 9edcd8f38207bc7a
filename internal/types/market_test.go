package types

import (
	"testing"
	"time"

	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MarketTestSuite struct {
	suite.Suite
}

func TestMarketSuite(t *testing.T) {
	suite.Run(t, new(MarketTestSuite))
}

func (suite *MarketTestSuite) validBars(n int) []PriceBar {
	start := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	bars := make([]PriceBar, n)

	for i := range bars {
		base := 100.0 + float64(i)
		bars[i] = PriceBar{
			Time:   start.Add(time.Duration(i) * 5 * time.Minute),
			Open:   base,
			High:   base + 1,
			Low:    base - 1,
			Close:  base + 0.5,
			Volume: 1000,
		}
	}

	return bars
}

func (suite *MarketTestSuite) TestNewPriceSeries() {
	series, err := NewPriceSeries("XAUUSD", "5m", suite.validBars(10))
	suite.NoError(err)
	suite.Equal(10, series.Len())
	suite.Equal("XAUUSD", series.Symbol())
	suite.Equal("5m", series.Timeframe())
	suite.Len(series.Close(), 10)
	suite.Equal(100.5, series.Close()[0])
	suite.Equal(series.Bar(3).High, series.High()[3])
}

func (suite *MarketTestSuite) TestEmptySeries() {
	_, err := NewPriceSeries("XAUUSD", "5m", nil)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeEmptySeries))
}

func (suite *MarketTestSuite) TestDuplicateTimestamp() {
	bars := suite.validBars(5)
	bars[3].Time = bars[2].Time

	_, err := NewPriceSeries("XAUUSD", "5m", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeDuplicateTimestamp))
}

func (suite *MarketTestSuite) TestNonMonotonicTimestamps() {
	bars := suite.validBars(5)
	bars[3].Time = bars[1].Time.Add(time.Second)

	_, err := NewPriceSeries("XAUUSD", "5m", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeNonMonotonicSeries))
}

func (suite *MarketTestSuite) TestInvalidBar() {
	bars := suite.validBars(5)
	bars[2].High = bars[2].Low - 1

	_, err := NewPriceSeries("XAUUSD", "5m", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))

	bars = suite.validBars(5)
	bars[4].Volume = -1
	_, err = NewPriceSeries("XAUUSD", "5m", bars)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidBar))
}

func (suite *MarketTestSuite) TestTruncate() {
	series, err := NewPriceSeries("XAUUSD", "5m", suite.validBars(10))
	suite.Require().NoError(err)

	head, err := series.Truncate(4)
	suite.NoError(err)
	suite.Equal(4, head.Len())
	suite.Equal(series.Close()[3], head.Close()[3])

	_, err = series.Truncate(0)
	suite.Error(err)
	_, err = series.Truncate(11)
	suite.Error(err)
}
