package strategy

import (
	"testing"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type StrategyTestSuite struct {
	suite.Suite
}

func (suite *StrategyTestSuite) TestParseAndCompile() {
	doc := `
name: RSI Oversold Long
symbol: XAUUSD
timeframe: 15m
direction: LONG
entry_conditions:
  - indicator: rsi
    operator: "<"
    value: 30
  - indicator: bb_lower
    operator: crosses_below
    value: 1900
tp_r: 1.5
sl_r: 1.0
risk_pct: 0.5
session: London
`

	def, err := Parse([]byte(doc))
	suite.Require().NoError(err)
	suite.Equal("RSI Oversold Long", def.Name)

	conditions, risk, err := def.Compile()
	suite.Require().NoError(err)

	// Two declared conditions plus the session filter.
	suite.Require().Len(conditions, 3)

	suite.Equal(types.ModuleIDRSI, conditions[0].Module)
	suite.Equal(types.OperatorLessThan, conditions[0].Operator)
	suite.Equal(30.0, conditions[0].Threshold.Value)

	suite.Equal(types.ModuleIDBollingerBands, conditions[1].Module)
	suite.Equal("bollinger_bands_lower", conditions[1].ColumnHint.TakeOr(""))

	suite.Equal(types.ModuleIDKillZones, conditions[2].Module)
	suite.Equal(types.OperatorEqual, conditions[2].Operator)
	suite.Equal("london", conditions[2].Threshold.Label)
	suite.Equal("kill_zones_session", conditions[2].ColumnHint.TakeOr(""))

	suite.Equal(types.DirectionLong, risk.Direction)
	suite.Equal(1.5, risk.TakeProfitR)
	suite.Equal(1.0, risk.StopLossR)
	suite.Equal(0.5, risk.RiskPct)
	suite.True(risk.RiskColumn.IsNone())
}

func (suite *StrategyTestSuite) TestLabelPresetsAndOverrides() {
	def := &Definition{
		Name:      "MA",
		Symbol:    "XAUUSD",
		Direction: types.DirectionLong,
		EntryConditions: []EntryCondition{
			{Indicator: "sma_50", Operator: ">", Value: float64Ptr(2000)},
			{Indicator: "sma", Config: map[string]any{"period": 100}, Operator: ">", Value: float64Ptr(2000)},
		},
		TakeProfitR: 2,
		StopLossR:   1,
		RiskPct:     1,
	}

	conditions, _, err := def.Compile()
	suite.Require().NoError(err)

	suite.Equal(types.ModuleIDSMA, conditions[0].Module)
	suite.Equal(50, conditions[0].Config["period"])

	suite.Equal(types.ModuleIDSMA, conditions[1].Module)
	suite.Equal(100, conditions[1].Config["period"])
}

func (suite *StrategyTestSuite) TestUnknownLabelHardFails() {
	def := &Definition{
		Name:      "Bad",
		Symbol:    "XAUUSD",
		Direction: types.DirectionLong,
		EntryConditions: []EntryCondition{
			{Indicator: "super_magic_signal", Operator: ">", Value: float64Ptr(1)},
		},
		TakeProfitR: 1,
		StopLossR:   1,
		RiskPct:     1,
	}

	_, _, err := def.Compile()
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func (suite *StrategyTestSuite) TestThresholdValidation() {
	base := func(entry EntryCondition) *Definition {
		return &Definition{
			Name:            "T",
			Symbol:          "XAUUSD",
			Direction:       types.DirectionLong,
			EntryConditions: []EntryCondition{entry},
			TakeProfitR:     1,
			StopLossR:       1,
			RiskPct:         1,
		}
	}

	_, _, err := base(EntryCondition{Indicator: "rsi", Operator: "<"}).Compile()
	suite.Require().Error(err, "missing threshold")

	_, _, err = base(EntryCondition{Indicator: "rsi", Operator: "<", Value: float64Ptr(30), Label: "bullish"}).Compile()
	suite.Require().Error(err, "both value and label")

	_, _, err = base(EntryCondition{Indicator: "rsi", Operator: "between", Value: float64Ptr(30)}).Compile()
	suite.Require().Error(err, "unknown operator")
}

func (suite *StrategyTestSuite) TestParseRejectsInvalidDocument() {
	_, err := Parse([]byte("name: X\nsymbol: XAUUSD\n"))
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func (suite *StrategyTestSuite) TestRiskColumnPassthrough() {
	def := &Definition{
		Name:      "Sweep",
		Symbol:    "XAUUSD",
		Direction: types.DirectionShort,
		EntryConditions: []EntryCondition{
			{Indicator: "liquidity_sweep", Operator: "==", Value: float64Ptr(1)},
		},
		TakeProfitR: 2,
		StopLossR:   1,
		RiskPct:     0.5,
		RiskColumn:  "liquidity_sweep_level",
		TieBreak:    types.TieBreakTargetFirst,
	}

	_, risk, err := def.Compile()
	suite.Require().NoError(err)
	suite.Equal("liquidity_sweep_level", risk.RiskColumn.TakeOr(""))
	suite.Equal(types.TieBreakTargetFirst, risk.TieBreak)
}

func (suite *StrategyTestSuite) TestGenerateSchemaJSON() {
	schema, err := GenerateSchemaJSON()
	suite.Require().NoError(err)
	suite.Contains(schema, "entry_conditions")
	suite.Contains(schema, "strategy-definition")
}

func float64Ptr(v float64) *float64 {
	return &v
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategyTestSuite))
}
