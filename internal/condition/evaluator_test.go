package condition

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/indicator"
	"github.com/roelofgootjesgit/edgelab/internal/logger"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type EvaluatorTestSuite struct {
	suite.Suite
	evaluator *Evaluator
}

func (suite *EvaluatorTestSuite) SetupTest() {
	suite.evaluator = NewEvaluator(indicator.NewDefaultRegistry(), logger.NewNopLogger())
}

func newSeries(suite *EvaluatorTestSuite, closes ...float64) *types.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		}
	}

	series, err := types.NewPriceSeries("XAUUSD", "1h", bars)
	suite.Require().NoError(err)

	return series
}

func (suite *EvaluatorTestSuite) TestCrossesAboveFiresOnceAtTheCross() {
	series := newSeries(suite, 5, 5, 10, 10, 3, 3)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDPrice,
		Operator:  types.OperatorCrossesAbove,
		Threshold: types.NumberThreshold(7),
	}})
	suite.Require().NoError(err)

	signal := result.Compiled[0].Signal
	suite.Equal(types.SignalSeries{false, false, true, false, false, false}, signal)
}

func (suite *EvaluatorTestSuite) TestCrossesBelow() {
	series := newSeries(suite, 5, 5, 10, 10, 3, 3)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDPrice,
		Operator:  types.OperatorCrossesBelow,
		Threshold: types.NumberThreshold(7),
	}})
	suite.Require().NoError(err)

	suite.Equal(types.SignalSeries{false, false, false, false, true, false}, result.Compiled[0].Signal)
}

func (suite *EvaluatorTestSuite) TestCombinedSignalIsConjunction() {
	series := newSeries(suite, 5, 8, 12, 6, 9, 15)

	result, err := suite.evaluator.Build(series, []types.Condition{
		{
			Module:    types.ModuleIDPrice,
			Operator:  types.OperatorGreaterThan,
			Threshold: types.NumberThreshold(7),
		},
		{
			Module:    types.ModuleIDPrice,
			Operator:  types.OperatorLessThan,
			Threshold: types.NumberThreshold(10),
		},
	})
	suite.Require().NoError(err)

	suite.Equal(types.SignalSeries{false, true, false, false, true, false}, result.Combined)
}

func (suite *EvaluatorTestSuite) TestPeriodSuffixResolution() {
	series := newSeries(suite, 10, 10, 10, 10, 10)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDSMA,
		Config:    map[string]any{"period": 3},
		Operator:  types.OperatorGreaterEqual,
		Threshold: types.NumberThreshold(10),
	}})
	suite.Require().NoError(err)
	suite.Equal("sma_3", result.Compiled[0].Column)
	suite.Equal(3, result.Combined.Count())
}

func (suite *EvaluatorTestSuite) TestAmbiguousColumnNeedsHint() {
	series := newSeries(suite, 10, 10, 10, 10)

	_, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDBollingerBands,
		Config:    map[string]any{"period": 3},
		Operator:  types.OperatorGreaterThan,
		Threshold: types.NumberThreshold(9),
	}})
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidStrategy))
}

func (suite *EvaluatorTestSuite) TestHintPinsColumn() {
	series := newSeries(suite, 10, 10, 10, 10)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:     types.ModuleIDBollingerBands,
		Config:     map[string]any{"period": 3},
		Operator:   types.OperatorGreaterThan,
		Threshold:  types.NumberThreshold(9),
		ColumnHint: optional.Some("bollinger_bands_lower"),
	}})
	suite.Require().NoError(err)
	suite.Equal("bollinger_bands_lower", result.Compiled[0].Column)
}

func (suite *EvaluatorTestSuite) TestStateColumnRequiresLabelEquality() {
	series := newSeries(suite, 10, 11, 12, 13, 14, 15)

	_, err := suite.evaluator.Build(series, []types.Condition{{
		Module:     types.ModuleIDSupertrend,
		Config:     map[string]any{"period": 3},
		Operator:   types.OperatorGreaterThan,
		Threshold:  types.LabelThreshold("bullish"),
		ColumnHint: optional.Some("supertrend_trend"),
	}})
	suite.Require().Error(err)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:     types.ModuleIDSupertrend,
		Config:     map[string]any{"period": 3},
		Operator:   types.OperatorEqual,
		Threshold:  types.LabelThreshold("bullish"),
		ColumnHint: optional.Some("supertrend_trend"),
	}})
	suite.Require().NoError(err)
	suite.Positive(result.Compiled[0].Signal.Count())
}

func (suite *EvaluatorTestSuite) TestFlagConditionSilentDuringWarmup() {
	series := newSeries(suite, 10, 11, 10, 11, 10, 11)

	built, err := suite.evaluator.Build(series, []types.Condition{{
		Module:     types.ModuleIDRSI,
		Config:     map[string]any{"period": 5},
		Operator:   types.OperatorEqual,
		Threshold:  types.NumberThreshold(0),
		ColumnHint: optional.Some("rsi_overbought"),
	}})
	suite.Require().NoError(err)

	// The flag has no value while the RSI itself is warming up; a "flag is
	// off" comparison must not fire there.
	for i := 0; i < 5; i++ {
		suite.False(built.Combined[i], "bar %d", i)
	}

	suite.True(built.Combined[5])
}

func (suite *EvaluatorTestSuite) TestEmptyConditionListRejected() {
	series := newSeries(suite, 10, 11)

	_, err := suite.evaluator.Build(series, nil)
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeNoConditions))
}

func (suite *EvaluatorTestSuite) TestNeverTrueWarning() {
	series := newSeries(suite, 10, 11, 12)

	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDPrice,
		Operator:  types.OperatorGreaterThan,
		Threshold: types.NumberThreshold(1000),
	}})
	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Equal(types.WarningCodeNeverTrue, result.Warnings[0].Code)
}

func (suite *EvaluatorTestSuite) TestNeverAvailableWarning() {
	series := newSeries(suite, 10, 11, 12)

	// Period 14 RSI has no defined value on a 3 bar series.
	result, err := suite.evaluator.Build(series, []types.Condition{{
		Module:    types.ModuleIDRSI,
		Operator:  types.OperatorLessThan,
		Threshold: types.NumberThreshold(30),
	}})
	suite.Require().NoError(err)
	suite.Require().Len(result.Warnings, 1)
	suite.Equal(types.WarningCodeNeverAvailable, result.Warnings[0].Code)
}

func (suite *EvaluatorTestSuite) TestVectorizedMatchesPerBarReference() {
	series := newSeries(suite, 10, 12, 9, 14, 14, 7, 20, 3, 3, 18)

	operators := []types.Operator{
		types.OperatorGreaterThan,
		types.OperatorLessThan,
		types.OperatorGreaterEqual,
		types.OperatorLessEqual,
		types.OperatorEqual,
		types.OperatorCrossesAbove,
		types.OperatorCrossesBelow,
	}

	for _, op := range operators {
		threshold := types.NumberThreshold(12)
		result, err := suite.evaluator.Build(series, []types.Condition{{
			Module:    types.ModuleIDPrice,
			Operator:  op,
			Threshold: threshold,
		}})
		suite.Require().NoError(err, "operator %s", op)

		compiled := result.Compiled[0]
		column := compiled.Columns[compiled.Column]

		for i := 0; i < series.Len(); i++ {
			suite.Equal(EvalAt(column, op, threshold, i), compiled.Signal[i],
				"operator %s bar %d", op, i)
		}
	}
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}
