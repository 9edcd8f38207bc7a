package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// OrderBlocks detects order blocks: the last opposing candle before an
// impulsive move. A bullish order block is the last down candle before a
// strong up move; its body range stays active as a zone until price closes
// through it or the validity window lapses.
type OrderBlocks struct{}

type orderBlockZone struct {
	origin int
	low    float64
	high   float64
}

// NewOrderBlocks creates the order blocks module.
func NewOrderBlocks() Module {
	return &OrderBlocks{}
}

// ID implements Module.
func (o *OrderBlocks) ID() types.ModuleID {
	return types.ModuleIDOrderBlocks
}

// Schema implements Module.
func (o *OrderBlocks) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "impulse_pct", Label: "Impulse Move %", Type: FieldTypeFloat, Default: 1.0, Min: 0.1, Max: 5.0, Step: 0.1, Help: "Minimum move that qualifies as impulsive"},
			{Name: "validity_candles", Label: "Validity Period", Type: FieldTypeInt, Default: 50, Min: 10, Max: 200, Step: 5},
		},
	}
}

// Compute implements Module.
func (o *OrderBlocks) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := o.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	impulsePct := cfg.Float("impulse_pct") / 100.0
	validity := cfg.Int("validity_candles")

	open := series.Open()
	high := series.High()
	low := series.Low()
	closes := series.Close()
	n := series.Len()

	inAny := make([]bool, n)
	inBullish := make([]bool, n)
	inBearish := make([]bool, n)

	var bullishZones, bearishZones []orderBlockZone

	for i := 1; i < n; i++ {
		movePct := 0.0
		if closes[i-1] != 0 {
			movePct = (closes[i] - closes[i-1]) / closes[i-1]
		}

		// Impulsive up move: the last down candle before it becomes a
		// bullish order block.
		if movePct >= impulsePct {
			if j := lastOpposingCandle(open, closes, i, false); j >= 0 {
				zoneLow := math.Min(open[j], closes[j])
				zoneHigh := math.Max(open[j], closes[j])
				bullishZones = append(bullishZones, orderBlockZone{origin: i, low: zoneLow, high: zoneHigh})
			}
		}

		if movePct <= -impulsePct {
			if j := lastOpposingCandle(open, closes, i, true); j >= 0 {
				zoneLow := math.Min(open[j], closes[j])
				zoneHigh := math.Max(open[j], closes[j])
				bearishZones = append(bearishZones, orderBlockZone{origin: i, low: zoneLow, high: zoneHigh})
			}
		}

		bullishZones = pruneOrderBlocks(bullishZones, i, validity, func(z orderBlockZone) bool {
			return closes[i] < z.low
		})
		bearishZones = pruneOrderBlocks(bearishZones, i, validity, func(z orderBlockZone) bool {
			return closes[i] > z.high
		})

		for _, z := range bullishZones {
			if low[i] <= z.high && high[i] >= z.low {
				inBullish[i] = true

				break
			}
		}

		for _, z := range bearishZones {
			if low[i] <= z.high && high[i] >= z.low {
				inBearish[i] = true

				break
			}
		}

		inAny[i] = inBullish[i] || inBearish[i]
	}

	return ColumnSet{
		"order_blocks":         FlagColumn(inAny),
		"order_blocks_bullish": FlagColumn(inBullish),
		"order_blocks_bearish": FlagColumn(inBearish),
	}, nil
}

// lastOpposingCandle scans back from bar before i for the nearest candle in
// the opposite direction of the impulse. bullishCandle selects up candles.
func lastOpposingCandle(open, closes []float64, i int, bullishCandle bool) int {
	for j := i - 1; j >= 0 && j >= i-5; j-- {
		if bullishCandle && closes[j] > open[j] {
			return j
		}

		if !bullishCandle && closes[j] < open[j] {
			return j
		}
	}

	return -1
}

func pruneOrderBlocks(zones []orderBlockZone, current, validity int, invalidated func(orderBlockZone) bool) []orderBlockZone {
	kept := zones[:0]

	for _, z := range zones {
		if current-z.origin > validity {
			continue
		}

		if invalidated(z) {
			continue
		}

		kept = append(kept, z)
	}

	return kept
}
