package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// MACD is the Moving Average Convergence Divergence module. The primary
// column is the MACD line; the signal line and histogram are additional
// outputs.
type MACD struct{}

// NewMACD creates the MACD module.
func NewMACD() Module {
	return &MACD{}
}

// ID implements Module.
func (m *MACD) ID() types.ModuleID {
	return types.ModuleIDMACD
}

// Schema implements Module.
func (m *MACD) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "fast_period", Label: "Fast Period", Type: FieldTypeInt, Default: 12, Min: 2, Max: 200},
			{Name: "slow_period", Label: "Slow Period", Type: FieldTypeInt, Default: 26, Min: 2, Max: 200},
			{Name: "signal_period", Label: "Signal Period", Type: FieldTypeInt, Default: 9, Min: 1, Max: 100},
		},
	}
}

// Compute implements Module.
func (m *MACD) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := m.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	fast := cfg.Int("fast_period")
	slow := cfg.Int("slow_period")
	signalPeriod := cfg.Int("signal_period")

	closes := series.Close()
	n := series.Len()

	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)

	macdLine := nanSlice(n)
	for i := range macdLine {
		if !math.IsNaN(fastEMA[i]) && !math.IsNaN(slowEMA[i]) {
			macdLine[i] = fastEMA[i] - slowEMA[i]
		}
	}

	// Signal EMA runs over the defined suffix of the MACD line.
	signal := nanSlice(n)
	start := slow - 1
	if start < n {
		smoothed := ema(macdLine[start:], signalPeriod)
		for i, v := range smoothed {
			signal[start+i] = v
		}
	}

	hist := nanSlice(n)
	for i := range hist {
		if !math.IsNaN(macdLine[i]) && !math.IsNaN(signal[i]) {
			hist[i] = macdLine[i] - signal[i]
		}
	}

	return ColumnSet{
		"macd":        NumericColumn(macdLine),
		"macd_signal": NumericColumn(signal),
		"macd_hist":   NumericColumn(hist),
	}, nil
}
