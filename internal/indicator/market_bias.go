package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Bias state values emitted by market_bias.
const (
	BiasBullish = "bullish"
	BiasBearish = "bearish"
	BiasNeutral = "neutral"
)

// MarketBias derives structural bias from swing breaks. A swing high or low
// is only confirmed once two later bars have printed, so the flip to a new
// bias lands after the break of an already-confirmed level. Bias persists
// until the opposite break occurs.
type MarketBias struct{}

// NewMarketBias creates the market bias module.
func NewMarketBias() Module {
	return &MarketBias{}
}

// ID implements Module.
func (m *MarketBias) ID() types.ModuleID {
	return types.ModuleIDMarketBias
}

// Schema implements Module.
func (m *MarketBias) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "swing_strength", Label: "Swing Strength", Type: FieldTypeInt, Default: 2, Min: 1, Max: 10, Help: "Bars on each side required to confirm a swing"},
			{Name: "lookback", Label: "Lookback", Type: FieldTypeInt, Default: 50, Min: 10, Max: 500, Help: "Max age in bars of a swing level"},
		},
	}
}

// Compute implements Module.
func (m *MarketBias) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := m.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	strength := cfg.Int("swing_strength")
	lookback := cfg.Int("lookback")

	high := series.High()
	low := series.Low()
	closes := series.Close()
	n := series.Len()

	swingHigh := make([]bool, n)
	swingLow := make([]bool, n)
	bias := make([]string, n)

	// A swing at bar j is only known at bar j+strength; record it there so
	// nothing below reads data from the future.
	type swing struct {
		index int
		price float64
	}

	var lastHigh, lastLow *swing

	for i := 0; i < n; i++ {
		// Confirm swings centered at i-strength.
		c := i - strength
		if c >= strength {
			isHigh, isLow := true, true
			for k := c - strength; k <= c+strength; k++ {
				if k == c {
					continue
				}
				if high[k] >= high[c] {
					isHigh = false
				}
				if low[k] <= low[c] {
					isLow = false
				}
			}

			if isHigh {
				swingHigh[i] = true
				lastHigh = &swing{index: c, price: high[c]}
			}
			if isLow {
				swingLow[i] = true
				lastLow = &swing{index: c, price: low[c]}
			}
		}

		// Expire stale levels.
		if lastHigh != nil && i-lastHigh.index > lookback {
			lastHigh = nil
		}
		if lastLow != nil && i-lastLow.index > lookback {
			lastLow = nil
		}

		current := BiasNeutral
		if i > 0 {
			current = bias[i-1]
		}

		if lastHigh != nil && closes[i] > lastHigh.price {
			current = BiasBullish
			lastHigh = nil
		} else if lastLow != nil && closes[i] < lastLow.price {
			current = BiasBearish
			lastLow = nil
		}

		bias[i] = current
	}

	swingHighColumn := FlagColumn(swingHigh)
	swingLowColumn := FlagColumn(swingLow)

	// No swing can be confirmed before a full center window has printed.
	for i := 0; i < 2*strength && i < n; i++ {
		swingHighColumn.Values[i] = math.NaN()
		swingLowColumn.Values[i] = math.NaN()
	}

	return ColumnSet{
		"market_bias":            StateColumn(bias),
		"market_bias_swing_high": swingHighColumn,
		"market_bias_swing_low":  swingLowColumn,
	}, nil
}
