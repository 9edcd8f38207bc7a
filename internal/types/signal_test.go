package types

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestAnd() {
	a := SignalSeries{true, true, false, true}
	b := SignalSeries{true, false, false, true}

	combined := And(4, a, b)
	suite.Equal(SignalSeries{true, false, false, true}, combined)
}

func (suite *SignalTestSuite) TestAndIdentity() {
	// With no inputs AND is the neutral all-true signal.
	suite.Equal(SignalSeries{true, true}, And(2))
}

func (suite *SignalTestSuite) TestCount() {
	suite.Equal(2, SignalSeries{true, false, true}.Count())
	suite.Equal(0, NewSignalSeries(5).Count())
}
