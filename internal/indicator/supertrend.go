package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Supertrend states exposed through the supertrend_trend column.
const (
	TrendBullish = "bullish"
	TrendBearish = "bearish"
)

// Supertrend is the Supertrend module: ATR bands that flip between support
// and resistance as price crosses them. The primary column is the active
// band line; supertrend_trend is the categorical trend state.
type Supertrend struct{}

// NewSupertrend creates the Supertrend module.
func NewSupertrend() Module {
	return &Supertrend{}
}

// ID implements Module.
func (s *Supertrend) ID() types.ModuleID {
	return types.ModuleIDSupertrend
}

// Schema implements Module.
func (s *Supertrend) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "ATR Period", Type: FieldTypeInt, Default: 10, Min: 2, Max: 100},
			{Name: "multiplier", Label: "ATR Multiplier", Type: FieldTypeFloat, Default: 3.0, Min: 0.5, Max: 10, Step: 0.1},
		},
	}
}

// Compute implements Module.
func (s *Supertrend) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := s.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	multiplier := cfg.Float("multiplier")

	high := series.High()
	low := series.Low()
	closes := series.Close()
	n := series.Len()

	atr := rma(trueRange(high, low, closes), period)

	line := nanSlice(n)
	states := make([]string, n)

	upper := math.NaN()
	lower := math.NaN()
	bullish := true

	for i := 0; i < n; i++ {
		if math.IsNaN(atr[i]) {
			continue
		}

		mid := (high[i] + low[i]) / 2
		basicUpper := mid + multiplier*atr[i]
		basicLower := mid - multiplier*atr[i]

		// Bands ratchet: they only tighten while the trend holds.
		if math.IsNaN(upper) || basicUpper < upper || closes[i-1] > upper {
			upper = basicUpper
		}

		if math.IsNaN(lower) || basicLower > lower || closes[i-1] < lower {
			lower = basicLower
		}

		if bullish && closes[i] < lower {
			bullish = false
		} else if !bullish && closes[i] > upper {
			bullish = true
		}

		if bullish {
			line[i] = lower
			states[i] = TrendBullish
		} else {
			line[i] = upper
			states[i] = TrendBearish
		}
	}

	return ColumnSet{
		"supertrend":       NumericColumn(line),
		"supertrend_trend": StateColumn(states),
	}, nil
}
