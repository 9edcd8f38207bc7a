package indicator

import (
	"testing"
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/stretchr/testify/suite"
)

type FairValueGapsTestSuite struct {
	suite.Suite
}

func (suite *FairValueGapsTestSuite) TestBullishGapFlaggedAtCompletingBar() {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series, err := barSeries(start, []types.PriceBar{
		{Open: 9.5, High: 10, Low: 9, Close: 9.8, Volume: 100},
		{Open: 9.8, High: 11.5, Low: 9.7, Close: 11.4, Volume: 100},
		// Low clears the first bar's high: a bullish imbalance completes here.
		{Open: 11.4, High: 12, Low: 11.05, Close: 11.9, Volume: 100},
		// Price moves away from the zone.
		{Open: 11.9, High: 12.2, Low: 11.5, Close: 12.0, Volume: 100},
	})
	suite.Require().NoError(err)

	columns, err := NewFairValueGaps().Compute(series, Config{})
	suite.Require().NoError(err)

	bullish := columns["fair_value_gaps_bullish"]
	suite.Equal(0.0, bullish.Values[1])
	suite.Equal(1.0, bullish.Values[2])
	suite.Equal(0.0, bullish.Values[3])

	suite.Equal(1.0, columns["fair_value_gaps"].Values[2])
	suite.Equal(0.0, columns["fair_value_gaps_bearish"].Values[2])
}

func (suite *FairValueGapsTestSuite) TestSmallGapIgnored() {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series, err := barSeries(start, []types.PriceBar{
		{Open: 100, High: 100.5, Low: 99.5, Close: 100.2, Volume: 100},
		{Open: 100.2, High: 101, Low: 100.1, Close: 100.9, Volume: 100},
		// Gap of 0.01 over a 100.5 base is far below the minimum size.
		{Open: 100.9, High: 101.2, Low: 100.51, Close: 101.1, Volume: 100},
	})
	suite.Require().NoError(err)

	columns, err := NewFairValueGaps().Compute(series, Config{})
	suite.Require().NoError(err)
	suite.Equal(0.0, columns["fair_value_gaps"].Values[2])
}

func TestFairValueGapsSuite(t *testing.T) {
	suite.Run(t, new(FairValueGapsTestSuite))
}
