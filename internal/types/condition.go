package types

import (
	"fmt"

	"github.com/moznion/go-optional"
)

// ModuleID identifies an indicator module in the registry.
type ModuleID string

const (
	ModuleIDRSI             ModuleID = "rsi"
	ModuleIDStochastic      ModuleID = "stochastic"
	ModuleIDCCI             ModuleID = "cci"
	ModuleIDWilliamsR       ModuleID = "williams_r"
	ModuleIDROC             ModuleID = "roc"
	ModuleIDMFI             ModuleID = "mfi"
	ModuleIDSMA             ModuleID = "sma"
	ModuleIDEMA             ModuleID = "ema"
	ModuleIDMACD            ModuleID = "macd"
	ModuleIDADX             ModuleID = "adx"
	ModuleIDSupertrend      ModuleID = "supertrend"
	ModuleIDIchimoku        ModuleID = "ichimoku"
	ModuleIDATR             ModuleID = "atr"
	ModuleIDBollingerBands  ModuleID = "bollinger_bands"
	ModuleIDKeltnerChannels ModuleID = "keltner_channels"
	ModuleIDVWAP            ModuleID = "vwap"
	ModuleIDOBV             ModuleID = "obv"
	ModuleIDCMF             ModuleID = "cmf"
	ModuleIDPivotPoints     ModuleID = "pivot_points"
	ModuleIDFibonacci       ModuleID = "fibonacci"
	ModuleIDFairValueGaps   ModuleID = "fair_value_gaps"
	ModuleIDOrderBlocks     ModuleID = "order_blocks"
	ModuleIDLiquiditySweep  ModuleID = "liquidity_sweep"
	ModuleIDDisplacement    ModuleID = "displacement"
	ModuleIDKillZones       ModuleID = "kill_zones"
	ModuleIDMarketBias      ModuleID = "market_bias"
	ModuleIDPrice           ModuleID = "price"
)

// Operator is a condition comparison operator.
type Operator string

const (
	OperatorGreaterThan  Operator = ">"
	OperatorLessThan     Operator = "<"
	OperatorGreaterEqual Operator = ">="
	OperatorLessEqual    Operator = "<="
	OperatorEqual        Operator = "=="
	OperatorCrossesAbove Operator = "crosses_above"
	OperatorCrossesBelow Operator = "crosses_below"
)

// IsValid reports whether op is one of the supported operators.
func (op Operator) IsValid() bool {
	switch op {
	case OperatorGreaterThan, OperatorLessThan, OperatorGreaterEqual,
		OperatorLessEqual, OperatorEqual, OperatorCrossesAbove, OperatorCrossesBelow:
		return true
	default:
		return false
	}
}

// IsCrossover reports whether op compares against the prior bar.
func (op Operator) IsCrossover() bool {
	return op == OperatorCrossesAbove || op == OperatorCrossesBelow
}

// Threshold is the right-hand side of a condition: either a numeric value or
// a categorical label (for == against state columns like "bullish").
type Threshold struct {
	Value float64 `yaml:"value" json:"value"`
	Label string  `yaml:"label,omitempty" json:"label,omitempty"`
}

// NumberThreshold builds a numeric threshold.
func NumberThreshold(v float64) Threshold {
	return Threshold{Value: v}
}

// LabelThreshold builds a categorical threshold.
func LabelThreshold(label string) Threshold {
	return Threshold{Label: label}
}

// IsLabel reports whether the threshold is categorical.
func (t Threshold) IsLabel() bool { return t.Label != "" }

func (t Threshold) String() string {
	if t.IsLabel() {
		return t.Label
	}

	return fmt.Sprintf("%g", t.Value)
}

// Condition is one entry condition: a module plus configuration, compared
// against a threshold. Conditions are immutable once built for a run and are
// combined with logical AND.
type Condition struct {
	Module    ModuleID       `yaml:"module" json:"module"`
	Config    map[string]any `yaml:"config,omitempty" json:"config,omitempty"`
	Operator  Operator       `yaml:"operator" json:"operator"`
	Threshold Threshold      `yaml:"threshold" json:"threshold"`
	// ColumnHint pins column resolution to an exact output column, bypassing
	// the module-id heuristic.
	ColumnHint optional.Option[string] `yaml:"column,omitempty" json:"column,omitempty"`
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %s", c.Module, c.Operator, c.Threshold)
}
