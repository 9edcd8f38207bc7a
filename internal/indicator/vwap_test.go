package indicator

import (
	"testing"
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/stretchr/testify/suite"
)

type VWAPTestSuite struct {
	suite.Suite
}

func (suite *VWAPTestSuite) TestCumulativeWithinDay() {
	// Typical price equals the close with symmetric wicks and flat volume, so
	// VWAP is the running mean of closes.
	series, err := closeSeries(10, 20, 30)
	suite.Require().NoError(err)

	columns, err := NewVWAP().Compute(series, Config{})
	suite.Require().NoError(err)

	vwap := columns["vwap"].Values
	suite.Equal(10.0, vwap[0])
	suite.Equal(15.0, vwap[1])
	suite.Equal(20.0, vwap[2])
}

func (suite *VWAPTestSuite) TestDayAnchorResets() {
	start := time.Date(2024, 1, 2, 23, 0, 0, 0, time.UTC)
	series, err := barSeries(start, []types.PriceBar{
		{Open: 10, High: 11, Low: 9, Close: 10, Volume: 100},
		// Midnight rolls over between these two bars.
		{Open: 20, High: 21, Low: 19, Close: 20, Volume: 100},
	})
	suite.Require().NoError(err)

	columns, err := NewVWAP().Compute(series, Config{"anchor": "day"})
	suite.Require().NoError(err)
	suite.Equal(20.0, columns["vwap"].Values[1])

	columns, err = NewVWAP().Compute(series, Config{"anchor": "series"})
	suite.Require().NoError(err)
	suite.Equal(15.0, columns["vwap"].Values[1])
}

func TestVWAPSuite(t *testing.T) {
	suite.Run(t, new(VWAPTestSuite))
}
