package indicator

import (
	"testing"
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/stretchr/testify/suite"
)

type KillZonesTestSuite struct {
	suite.Suite
}

func (suite *KillZonesTestSuite) TestDefaultSessions() {
	bar := func(hour int) types.PriceBar {
		return types.PriceBar{
			Time:   time.Date(2024, 1, 2, hour, 0, 0, 0, time.UTC),
			Open:   10, High: 11, Low: 9, Close: 10, Volume: 100,
		}
	}

	series, err := types.NewPriceSeries("XAUUSD", "1h", []types.PriceBar{
		bar(1),  // Tokyo
		bar(8),  // London
		bar(14), // New York
		bar(22), // outside every window
	})
	suite.Require().NoError(err)

	columns, err := NewKillZones().Compute(series, Config{})
	suite.Require().NoError(err)

	flags := columns["kill_zones"]
	session := columns["kill_zones_session"]

	suite.Equal(1.0, flags.Values[0])
	suite.Equal(SessionTokyo, session.States[0])
	suite.Equal(SessionLondon, session.States[1])
	suite.Equal(SessionNewYork, session.States[2])

	suite.Equal(0.0, flags.Values[3])
	suite.Equal(SessionOff, session.States[3])
	suite.False(session.Available(3))
}

func (suite *KillZonesTestSuite) TestWindowWrappingMidnight() {
	suite.True(hourInWindow(23, 22, 4))
	suite.True(hourInWindow(2, 22, 4))
	suite.False(hourInWindow(12, 22, 4))
	suite.False(hourInWindow(4, 22, 4))
}

func TestKillZonesSuite(t *testing.T) {
	suite.Run(t, new(KillZonesTestSuite))
}
