package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// Direction is the trade direction.
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// ExitReason explains why a trade was closed.
type ExitReason string

const (
	ExitReasonTakeProfit ExitReason = "take_profit"
	ExitReasonStopLoss   ExitReason = "stop_loss"
	ExitReasonEndOfData  ExitReason = "end_of_data"
)

// TieBreak selects which exit wins when a single bar's range touches both the
// stop and the target. The conservative default is stop-first.
type TieBreak string

const (
	TieBreakStopFirst   TieBreak = "stop_first"
	TieBreakTargetFirst TieBreak = "target_first"
)

// Trade is one completed simulated trade. Every trade in a BacktestResult is
// closed: the exit fields are always set, with ExitReasonEndOfData marking a
// force-close at the last bar.
type Trade struct {
	Direction   Direction  `csv:"direction" yaml:"direction"`
	EntryIndex  int        `csv:"entry_index" yaml:"entry_index"`
	EntryTime   time.Time  `csv:"entry_time" yaml:"entry_time"`
	EntryPrice  float64    `csv:"entry_price" yaml:"entry_price"`
	StopPrice   float64    `csv:"stop_price" yaml:"stop_price"`
	TargetPrice float64    `csv:"target_price" yaml:"target_price"`
	ExitIndex   int        `csv:"exit_index" yaml:"exit_index"`
	ExitTime    time.Time  `csv:"exit_time" yaml:"exit_time"`
	ExitPrice   float64    `csv:"exit_price" yaml:"exit_price"`
	ExitReason  ExitReason `csv:"exit_reason" yaml:"exit_reason"`
	// PnL is the signed price move between entry and exit.
	PnL float64 `csv:"pnl" yaml:"pnl"`
	// PnLR is the trade result expressed as a multiple of its initial risk.
	PnLR float64 `csv:"pnl_r" yaml:"pnl_r"`
}

// IsWin reports whether the trade closed with a positive R-multiple.
// Break-even counts as a loss.
func (t Trade) IsWin() bool {
	return t.PnLR > 0
}

// RiskParams describes the exit rules supplied alongside a condition set.
// The risk unit (what "1R" means in price distance) is either a fixed
// percentage of the entry price or the distance to a structure level read
// from a module output column; the simulator never invents it.
type RiskParams struct {
	Direction Direction `yaml:"direction" json:"direction" validate:"required,oneof=LONG SHORT" jsonschema:"title=Direction,description=Trade direction for generated entries"`
	// StopLossR scales the risk unit into the stop distance.
	StopLossR float64 `yaml:"stop_loss_r" json:"stop_loss_r" validate:"gt=0" jsonschema:"title=Stop Loss R,minimum=0"`
	// TakeProfitR scales the risk unit into the target distance.
	TakeProfitR float64 `yaml:"take_profit_r" json:"take_profit_r" validate:"gt=0" jsonschema:"title=Take Profit R,minimum=0"`
	// RiskPct defines the risk unit as a percentage of the entry price.
	// Ignored on bars where RiskColumn supplies a structure distance.
	RiskPct float64 `yaml:"risk_pct" json:"risk_pct" validate:"gt=0,lte=5" jsonschema:"title=Risk Percent,description=Risk unit as percent of entry price,minimum=0,maximum=5"`
	// RiskColumn names a module output column holding a structure level
	// (e.g. liquidity_sweep_level); the risk unit becomes the distance from
	// entry to that level where available.
	RiskColumn optional.Option[string] `yaml:"risk_column,omitempty" json:"risk_column,omitempty" jsonschema:"title=Risk Column"`
	// TieBreak resolves a bar touching both stop and target. Empty means
	// stop-first.
	TieBreak TieBreak `yaml:"tie_break,omitempty" json:"tie_break,omitempty" validate:"omitempty,oneof=stop_first target_first" jsonschema:"title=Tie Break"`
}

// Warning is a structured diagnostic note surfaced to callers.
type Warning struct {
	Code    string            `yaml:"code" json:"code"`
	Message string            `yaml:"message" json:"message"`
	Details map[string]string `yaml:"details,omitempty" json:"details,omitempty"`
}

// Warning codes emitted by the engine.
const (
	WarningCodeNoTrades       = "no_trades"
	WarningCodeNeverAvailable = "condition_never_available"
	WarningCodeNeverTrue      = "condition_never_true"
	WarningCodeForcedClose    = "trade_force_closed"
)

// Diagnostics describes one backtest run.
type Diagnostics struct {
	RunID          string    `yaml:"run_id" json:"run_id"`
	BarsProcessed  int       `yaml:"bars_processed" json:"bars_processed"`
	ConditionsUsed int       `yaml:"conditions_used" json:"conditions_used"`
	Warnings       []Warning `yaml:"warnings,omitempty" json:"warnings,omitempty"`
}

// BacktestResult is the ordered trade list plus run diagnostics. It is owned
// exclusively by the caller; the engine never shares it across runs.
type BacktestResult struct {
	Trades      []Trade     `yaml:"trades" json:"trades"`
	Diagnostics Diagnostics `yaml:"diagnostics" json:"diagnostics"`
}
