package engine

import (
	"context"
	"fmt"
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
)

// checkCancelEvery is how many bars the simulation loop processes between
// context checks.
const checkCancelEvery = 4096

// tradeSimulator walks the series once and turns an entry signal into a
// closed trade list. It holds at most one position: entries fill at the
// signal bar's close, exits are evaluated only on strictly later bars, and
// a position still open at the last bar is force-closed at that bar's close.
type tradeSimulator struct {
	series *types.PriceSeries
	risk   types.RiskParams
	// riskDistance is the per-bar price distance defining 1R for an entry at
	// that bar. NaN or non-positive means no entry is possible there.
	riskDistance []float64
	onBar        func(current int, total int) error
}

func newTradeSimulator(series *types.PriceSeries, risk types.RiskParams, riskDistance []float64) *tradeSimulator {
	return &tradeSimulator{
		series:       series,
		risk:         risk,
		riskDistance: riskDistance,
	}
}

// run simulates the entry signal. The returned trades are ordered by entry
// index and every trade is closed.
func (s *tradeSimulator) run(ctx context.Context, entries types.SignalSeries) ([]types.Trade, []types.Warning, error) {
	n := s.series.Len()
	if len(entries) != n {
		return nil, nil, errors.Newf(errors.ErrCodeSimulationFailed,
			"run: signal has %d bars for a %d bar series", len(entries), n)
	}

	tieBreak := s.risk.TieBreak
	if tieBreak == "" {
		tieBreak = types.TieBreakStopFirst
	}

	times := s.series.Times()
	closes := s.series.Close()

	trades := []types.Trade{}

	var warnings []types.Warning

	inTrade := false

	var open types.Trade

	var unit float64

	for i := 0; i < n; i++ {
		if i%checkCancelEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeRunCancelled, "run cancelled", err)
			}
		}

		if s.onBar != nil {
			if err := s.onBar(i+1, n); err != nil {
				return nil, nil, errors.Wrap(errors.ErrCodeRunCancelled, "run aborted by callback", err)
			}
		}

		if inTrade {
			if exited, trade := s.checkExit(open, unit, i, tieBreak); exited {
				trades = append(trades, trade)
				inTrade = false

				// No re-entry on the bar a trade closes.
				continue
			}

			if i == n-1 {
				trade := s.close(open, unit, i, closes[i], types.ExitReasonEndOfData)
				trades = append(trades, trade)
				inTrade = false

				warnings = append(warnings, forcedCloseWarning(trade))
			}

			continue
		}

		if !entries[i] {
			continue
		}

		distance := s.riskDistance[i]
		if math.IsNaN(distance) || distance <= 0 {
			continue
		}

		entry := closes[i]
		unit = distance

		stop, target := s.levels(entry, distance)
		open = types.Trade{
			Direction:   s.risk.Direction,
			EntryIndex:  i,
			EntryTime:   times[i],
			EntryPrice:  entry,
			StopPrice:   stop,
			TargetPrice: target,
		}
		inTrade = true

		// An entry on the closing bar has no later bar to exit on; it is
		// force closed at the same close it entered on.
		if i == n-1 {
			trade := s.close(open, unit, i, closes[i], types.ExitReasonEndOfData)
			trades = append(trades, trade)
			inTrade = false

			warnings = append(warnings, forcedCloseWarning(trade))
		}
	}

	if len(trades) == 0 {
		warnings = append(warnings, types.Warning{
			Code:    types.WarningCodeNoTrades,
			Message: "no trades were generated",
			Details: map[string]string{"entry_signals": fmt.Sprintf("%d", entries.Count())},
		})
	}

	return trades, warnings, nil
}

func forcedCloseWarning(trade types.Trade) types.Warning {
	return types.Warning{
		Code:    types.WarningCodeForcedClose,
		Message: "open position force closed at the end of the data",
		Details: map[string]string{"entry_time": trade.EntryTime.Format("2006-01-02T15:04:05Z07:00")},
	}
}

func (s *tradeSimulator) levels(entry, unit float64) (stop, target float64) {
	if s.risk.Direction == types.DirectionLong {
		return entry - s.risk.StopLossR*unit, entry + s.risk.TakeProfitR*unit
	}

	return entry + s.risk.StopLossR*unit, entry - s.risk.TakeProfitR*unit
}

func (s *tradeSimulator) checkExit(open types.Trade, unit float64, i int, tieBreak types.TieBreak) (bool, types.Trade) {
	high := s.series.High()[i]
	low := s.series.Low()[i]

	var stopHit, targetHit bool

	if s.risk.Direction == types.DirectionLong {
		stopHit = low <= open.StopPrice
		targetHit = high >= open.TargetPrice
	} else {
		stopHit = high >= open.StopPrice
		targetHit = low <= open.TargetPrice
	}

	switch {
	case stopHit && targetHit:
		if tieBreak == types.TieBreakTargetFirst {
			return true, s.close(open, unit, i, open.TargetPrice, types.ExitReasonTakeProfit)
		}

		return true, s.close(open, unit, i, open.StopPrice, types.ExitReasonStopLoss)
	case stopHit:
		return true, s.close(open, unit, i, open.StopPrice, types.ExitReasonStopLoss)
	case targetHit:
		return true, s.close(open, unit, i, open.TargetPrice, types.ExitReasonTakeProfit)
	default:
		return false, types.Trade{}
	}
}

func (s *tradeSimulator) close(open types.Trade, unit float64, i int, price float64, reason types.ExitReason) types.Trade {
	open.ExitIndex = i
	open.ExitTime = s.series.Times()[i]
	open.ExitPrice = price
	open.ExitReason = reason

	if s.risk.Direction == types.DirectionLong {
		open.PnL = price - open.EntryPrice
	} else {
		open.PnL = open.EntryPrice - price
	}

	open.PnLR = open.PnL / unit

	return open
}
