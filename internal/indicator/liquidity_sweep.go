package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// LiquiditySweep detects sweeps of resting liquidity: a bar tagging a
// cluster of equal highs/lows within tolerance, or taking out the prior
// session extreme. Besides the detection flag it exports
// liquidity_sweep_level, the swept price carried forward — strategies use it
// as the structure level for risk-unit derivation.
type LiquiditySweep struct{}

// NewLiquiditySweep creates the liquidity sweep module.
func NewLiquiditySweep() Module {
	return &LiquiditySweep{}
}

// ID implements Module.
func (l *LiquiditySweep) ID() types.ModuleID {
	return types.ModuleIDLiquiditySweep
}

// Schema implements Module.
func (l *LiquiditySweep) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "sweep_type", Label: "Sweep Type", Type: FieldTypeSelect, Default: "equal_highs", Options: []string{"equal_highs", "equal_lows", "session_high", "session_low"}},
			{Name: "tolerance", Label: "Tolerance %", Type: FieldTypeFloat, Default: 0.1, Min: 0.01, Max: 1.0, Step: 0.01, Help: "Price equality tolerance as percent"},
			{Name: "lookback", Label: "Lookback", Type: FieldTypeInt, Default: 20, Min: 5, Max: 200},
		},
	}
}

// Compute implements Module.
func (l *LiquiditySweep) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := l.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	sweepType := cfg.String("sweep_type")
	tolerance := cfg.Float("tolerance") / 100.0
	lookback := cfg.Int("lookback")

	high := series.High()
	low := series.Low()
	n := series.Len()

	detected := make([]bool, n)
	level := nanSlice(n)

	// Session extremes approximate one trading day of bars.
	const sessionBars = 24

	for i := lookback; i < n; i++ {
		switch sweepType {
		case "equal_highs":
			for j := i - lookback; j < i; j++ {
				if high[j] > 0 && math.Abs(high[i]-high[j])/high[j] <= tolerance {
					detected[i] = true
					level[i] = high[i]

					break
				}
			}

		case "equal_lows":
			for j := i - lookback; j < i; j++ {
				if low[j] > 0 && math.Abs(low[i]-low[j])/low[j] <= tolerance {
					detected[i] = true
					level[i] = low[i]

					break
				}
			}

		case "session_high":
			if i >= sessionBars {
				sessionHigh := high[i-sessionBars]
				for j := i - sessionBars + 1; j < i; j++ {
					if high[j] > sessionHigh {
						sessionHigh = high[j]
					}
				}

				if high[i] >= sessionHigh {
					detected[i] = true
					level[i] = sessionHigh
				}
			}

		case "session_low":
			if i >= sessionBars {
				sessionLow := low[i-sessionBars]
				for j := i - sessionBars + 1; j < i; j++ {
					if low[j] < sessionLow {
						sessionLow = low[j]
					}
				}

				if low[i] <= sessionLow {
					detected[i] = true
					level[i] = sessionLow
				}
			}
		}

		// Carry the most recent swept level forward so later entries can
		// anchor their risk unit on it.
		if !detected[i] && i > 0 && !math.IsNaN(level[i-1]) {
			level[i] = level[i-1]
		}
	}

	return ColumnSet{
		"liquidity_sweep":       FlagColumn(detected),
		"liquidity_sweep_level": NumericColumn(level),
	}, nil
}
