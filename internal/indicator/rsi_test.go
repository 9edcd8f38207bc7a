package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type RSITestSuite struct {
	suite.Suite
}

func (suite *RSITestSuite) TestAllGains() {
	series, err := closeSeries(10, 11, 12, 13, 14, 15)
	suite.Require().NoError(err)

	columns, err := NewRSI().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	rsi := columns["rsi"]
	suite.Equal(ColumnKindNumeric, rsi.Kind)

	// No history before the first full period of deltas.
	for i := 0; i < 3; i++ {
		suite.True(math.IsNaN(rsi.Values[i]), "bar %d should be unavailable", i)
		suite.False(rsi.Available(i))
	}

	// A purely rising series has zero average loss.
	for i := 3; i < 6; i++ {
		suite.Equal(100.0, rsi.Values[i], "bar %d", i)
	}

	overbought := columns["rsi_overbought"]
	suite.Equal(ColumnKindFlag, overbought.Kind)
	suite.Equal(1.0, overbought.Values[3])

	suite.Equal(0.0, columns["rsi_oversold"].Values[3])
}

func (suite *RSITestSuite) TestFlagsUnavailableDuringWarmup() {
	series, err := closeSeries(10, 11, 12, 13, 14, 15)
	suite.Require().NoError(err)

	columns, err := NewRSI().Compute(series, Config{"period": 3})
	suite.Require().NoError(err)

	overbought := columns["rsi_overbought"]
	oversold := columns["rsi_oversold"]

	// The flags derive from the RSI value, so they cannot exist before it.
	for i := 0; i < 3; i++ {
		suite.False(overbought.Available(i), "bar %d", i)
		suite.False(oversold.Available(i), "bar %d", i)
	}

	for i := 3; i < 6; i++ {
		suite.True(overbought.Available(i), "bar %d", i)
		suite.True(oversold.Available(i), "bar %d", i)
	}
}

func (suite *RSITestSuite) TestMixedMoves() {
	// Deltas over period 2: +2, -1 then -1, +2 at the next bar.
	series, err := closeSeries(10, 12, 11, 13)
	suite.Require().NoError(err)

	columns, err := NewRSI().Compute(series, Config{"period": 2})
	suite.Require().NoError(err)

	rsi := columns["rsi"].Values

	// avg gain 1, avg loss 0.5 at bar 2: RS = 2, RSI = 100 - 100/3.
	suite.InDelta(66.6667, rsi[2], 0.001)
	suite.InDelta(66.6667, rsi[3], 0.001)
}

func (suite *RSITestSuite) TestInvalidPeriod() {
	series, err := closeSeries(10, 11, 12)
	suite.Require().NoError(err)

	_, err = NewRSI().Compute(series, Config{"period": 999})
	suite.Require().Error(err)
}

func TestRSISuite(t *testing.T) {
	suite.Run(t, new(RSITestSuite))
}
