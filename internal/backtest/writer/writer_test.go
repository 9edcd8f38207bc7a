package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type WriterTestSuite struct {
	suite.Suite
}

func TestWriterSuite(t *testing.T) {
	suite.Run(t, new(WriterTestSuite))
}

func (suite *WriterTestSuite) sampleResult() *types.BacktestResult {
	entry := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	return &types.BacktestResult{
		Trades: []types.Trade{
			{
				Direction:   types.DirectionLong,
				EntryIndex:  3,
				EntryTime:   entry,
				EntryPrice:  100,
				StopPrice:   99,
				TargetPrice: 102,
				ExitIndex:   5,
				ExitTime:    entry.Add(2 * time.Hour),
				ExitPrice:   102,
				ExitReason:  types.ExitReasonTakeProfit,
				PnL:         2,
				PnLR:        2,
			},
		},
		Diagnostics: types.Diagnostics{
			RunID:          "run-1",
			BarsProcessed:  10,
			ConditionsUsed: 2,
			Warnings: []types.Warning{
				{Code: types.WarningCodeNeverTrue, Message: "condition never true"},
			},
		},
	}
}

func (suite *WriterTestSuite) TestWriteProducesAllArtifacts() {
	folder := filepath.Join(suite.T().TempDir(), "results")
	w := NewResultWriter(folder)
	result := suite.sampleResult()

	err := w.Write(result, types.ComputeTradeStats(result.Trades))
	suite.Require().NoError(err)

	csvContent, err := os.ReadFile(filepath.Join(folder, "trades.csv"))
	suite.Require().NoError(err)
	lines := strings.Split(strings.TrimSpace(string(csvContent)), "\n")
	suite.Len(lines, 2)
	suite.Contains(lines[0], "entry_price")
	suite.Contains(lines[1], "take_profit")

	statsContent, err := os.ReadFile(filepath.Join(folder, "stats.yaml"))
	suite.Require().NoError(err)
	var stats types.TradeStats
	suite.Require().NoError(yaml.Unmarshal(statsContent, &stats))
	suite.Equal(1, stats.NumberOfTrades)
	suite.Equal(1, stats.NumberOfWinningTrades)

	diagContent, err := os.ReadFile(filepath.Join(folder, "diagnostics.yaml"))
	suite.Require().NoError(err)
	var diag types.Diagnostics
	suite.Require().NoError(yaml.Unmarshal(diagContent, &diag))
	suite.Equal("run-1", diag.RunID)
	suite.Equal(10, diag.BarsProcessed)
	suite.Len(diag.Warnings, 1)
}

func (suite *WriterTestSuite) TestWriteEmptyTrades() {
	folder := filepath.Join(suite.T().TempDir(), "results")
	w := NewResultWriter(folder)
	result := &types.BacktestResult{
		Diagnostics: types.Diagnostics{RunID: "run-2"},
	}

	err := w.Write(result, types.ComputeTradeStats(nil))
	suite.Require().NoError(err)

	csvContent, err := os.ReadFile(filepath.Join(folder, "trades.csv"))
	suite.Require().NoError(err)
	suite.Contains(string(csvContent), "direction")
}

func (suite *WriterTestSuite) TestWriteCreatesNestedFolder() {
	folder := filepath.Join(suite.T().TempDir(), "a", "b", "c")
	w := NewResultWriter(folder)
	result := suite.sampleResult()

	suite.Require().NoError(w.Write(result, types.ComputeTradeStats(result.Trades)))
	suite.Equal(folder, w.Folder())

	_, err := os.Stat(filepath.Join(folder, "trades.csv"))
	suite.NoError(err)
}
