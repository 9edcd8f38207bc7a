package types

import (
	"github.com/shopspring/decimal"
)

// TradeStats is the aggregate view of a backtest's trade list. All R-based
// figures use the trade's initial risk as the unit, which keeps strategies
// with different price scales comparable.
type TradeStats struct {
	NumberOfTrades        int     `yaml:"number_of_trades" json:"number_of_trades"`
	NumberOfWinningTrades int     `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	NumberOfLosingTrades  int     `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	WinRate               float64 `yaml:"win_rate" json:"win_rate"`
	// TotalR is the sum of all trades' R-multiples.
	TotalR float64 `yaml:"total_r" json:"total_r"`
	// ProfitFactor is gross win R divided by gross loss R. Zero when there
	// are no losing trades.
	ProfitFactor float64 `yaml:"profit_factor" json:"profit_factor"`
	// ExpectancyR is the average R-multiple per trade.
	ExpectancyR  float64 `yaml:"expectancy_r" json:"expectancy_r"`
	AverageWinR  float64 `yaml:"average_win_r" json:"average_win_r"`
	AverageLossR float64 `yaml:"average_loss_r" json:"average_loss_r"`
	// MaxDrawdownR is the largest peak-to-trough fall of the cumulative
	// R-multiple equity curve.
	MaxDrawdownR float64 `yaml:"max_drawdown_r" json:"max_drawdown_r"`
}

// ComputeTradeStats aggregates a closed trade list. An empty list yields a
// zero-valued TradeStats, not an error.
func ComputeTradeStats(trades []Trade) TradeStats {
	stats := TradeStats{}
	stats.NumberOfTrades = len(trades)

	if len(trades) == 0 {
		return stats
	}

	totalR := decimal.Zero
	grossWinR := decimal.Zero
	grossLossR := decimal.Zero
	equity := decimal.Zero
	peak := decimal.Zero
	maxDrawdown := decimal.Zero

	for _, trade := range trades {
		r := decimal.NewFromFloat(trade.PnLR)
		totalR = totalR.Add(r)

		if trade.IsWin() {
			stats.NumberOfWinningTrades++

			grossWinR = grossWinR.Add(r)
		} else {
			stats.NumberOfLosingTrades++

			grossLossR = grossLossR.Add(r)
		}

		equity = equity.Add(r)
		if equity.GreaterThan(peak) {
			peak = equity
		}

		if drawdown := peak.Sub(equity); drawdown.GreaterThan(maxDrawdown) {
			maxDrawdown = drawdown
		}
	}

	count := decimal.NewFromInt(int64(len(trades)))

	stats.WinRate, _ = decimal.NewFromInt(int64(stats.NumberOfWinningTrades)).Div(count).Float64()
	stats.TotalR, _ = totalR.Float64()
	stats.ExpectancyR, _ = totalR.Div(count).Float64()
	stats.MaxDrawdownR, _ = maxDrawdown.Float64()

	if stats.NumberOfWinningTrades > 0 {
		stats.AverageWinR, _ = grossWinR.Div(decimal.NewFromInt(int64(stats.NumberOfWinningTrades))).Float64()
	}

	if stats.NumberOfLosingTrades > 0 {
		stats.AverageLossR, _ = grossLossR.Div(decimal.NewFromInt(int64(stats.NumberOfLosingTrades))).Float64()
	}

	if grossLossR.IsNegative() {
		stats.ProfitFactor, _ = grossWinR.Div(grossLossR.Abs()).Float64()
	}

	return stats
}
