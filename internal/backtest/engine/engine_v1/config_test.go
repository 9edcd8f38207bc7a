package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (suite *ConfigTestSuite) TestDefaults() {
	config := DefaultConfig()
	suite.Equal(1_000_000, config.MaxCandles)
	suite.Equal(20, config.MaxConditions)
	suite.Equal(500, config.MaxPeriod)
	suite.Equal(0, config.Workers)
	suite.True(config.StartTime.IsNone())
	suite.True(config.EndTime.IsNone())
}

func (suite *ConfigTestSuite) TestUnmarshalYAML() {
	yamlContent := `
max_candles: 5000
max_conditions: 5
max_period: 100
workers: 4
start_time: 2024-01-01T00:00:00Z
end_time: 2024-06-30T23:59:59Z
`

	config := DefaultConfig()
	suite.Require().NoError(yaml.Unmarshal([]byte(yamlContent), &config))
	suite.Equal(5000, config.MaxCandles)
	suite.Equal(5, config.MaxConditions)
	suite.Equal(100, config.MaxPeriod)
	suite.Equal(4, config.Workers)
	suite.True(config.StartTime.IsSome())
	suite.True(config.EndTime.IsSome())
}

func (suite *ConfigTestSuite) TestPartialYAMLKeepsDefaults() {
	config := DefaultConfig()
	suite.Require().NoError(yaml.Unmarshal([]byte("workers: 8\n"), &config))
	suite.Equal(8, config.Workers)
	suite.Equal(1_000_000, config.MaxCandles)
	suite.Equal(20, config.MaxConditions)
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	var schema map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &schema))
	suite.Equal("backtest-engine-v1-config", schema["title"])

	properties, ok := schema["properties"].(map[string]any)
	suite.Require().True(ok)
	suite.Contains(properties, "max_candles")
	suite.Contains(properties, "workers")
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
