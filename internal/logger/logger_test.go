package logger

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type LoggerTestSuite struct {
	suite.Suite
}

func TestLoggerSuite(t *testing.T) {
	suite.Run(t, new(LoggerTestSuite))
}

func (suite *LoggerTestSuite) TestNewLogger() {
	log, err := NewLogger()
	suite.NoError(err)
	suite.NotNil(log)
	suite.NotNil(log.Logger)
}

func (suite *LoggerTestSuite) TestNopLogger() {
	log := NewNopLogger()
	suite.NotNil(log)
	// Nop logger must be safe to use and sync.
	log.Info("ignored")
	suite.NoError(log.Sync())
}
