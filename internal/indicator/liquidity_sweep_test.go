package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"
)

type LiquiditySweepTestSuite struct {
	suite.Suite
}

func (suite *LiquiditySweepTestSuite) TestEqualHighsSweep() {
	// All highs sit one point above the close, so every bar past the lookback
	// tags an equal high within tolerance.
	series, err := closeSeries(10, 10, 10, 10, 10, 10, 10, 10)
	suite.Require().NoError(err)

	columns, err := NewLiquiditySweep().Compute(series, Config{"lookback": 5})
	suite.Require().NoError(err)

	detected := columns["liquidity_sweep"]
	level := columns["liquidity_sweep_level"]

	suite.Equal(0.0, detected.Values[4])
	suite.True(math.IsNaN(level.Values[4]))

	for i := 5; i < 8; i++ {
		suite.Equal(1.0, detected.Values[i], "bar %d", i)
		suite.Equal(11.0, level.Values[i], "bar %d", i)
	}
}

func (suite *LiquiditySweepTestSuite) TestLevelCarriesForward() {
	// One spike high at bar 5 sweeps nothing afterwards, but the swept level
	// stays readable for later entries.
	closes := []float64{10, 10, 10, 10, 10, 10, 50, 60, 70}
	series, err := closeSeries(closes...)
	suite.Require().NoError(err)

	columns, err := NewLiquiditySweep().Compute(series, Config{"lookback": 5, "tolerance": 0.05})
	suite.Require().NoError(err)

	detected := columns["liquidity_sweep"]
	level := columns["liquidity_sweep_level"]

	suite.Equal(1.0, detected.Values[5])
	suite.Equal(11.0, level.Values[5])

	// Bars at the new price level detect nothing but keep the prior level.
	suite.Equal(0.0, detected.Values[7])
	suite.Equal(11.0, level.Values[7])
}

func TestLiquiditySweepSuite(t *testing.T) {
	suite.Run(t, new(LiquiditySweepTestSuite))
}
