package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// FairValueGaps detects three-candle imbalances: a bullish gap exists when a
// bar's low clears the high from two bars back, leaving untraded space. The
// zone stays active for a configured validity window or until price fills
// the configured fraction of it. Detection is flagged at the bar that
// completes the pattern, never retroactively.
type FairValueGaps struct{}

type fvgZone struct {
	origin int
	low    float64
	high   float64
}

// NewFairValueGaps creates the FVG module.
func NewFairValueGaps() Module {
	return &FairValueGaps{}
}

// ID implements Module.
func (f *FairValueGaps) ID() types.ModuleID {
	return types.ModuleIDFairValueGaps
}

// Schema implements Module.
func (f *FairValueGaps) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "min_gap_pct", Label: "Minimum Gap %", Type: FieldTypeFloat, Default: 0.5, Min: 0.1, Max: 2.0, Step: 0.1, Help: "Minimum gap size to qualify as FVG"},
			{Name: "validity_candles", Label: "Validity Period", Type: FieldTypeInt, Default: 50, Min: 10, Max: 100, Step: 5, Help: "How many candles a gap remains active"},
			{Name: "fill_threshold", Label: "Fill Threshold", Type: FieldTypeFloat, Default: 0.5, Min: 0.25, Max: 1.0, Step: 0.05, Help: "Fraction of the gap that invalidates it when filled"},
		},
	}
}

// Compute implements Module.
func (f *FairValueGaps) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := f.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	minGapPct := cfg.Float("min_gap_pct") / 100.0
	validity := cfg.Int("validity_candles")
	fillThreshold := cfg.Float("fill_threshold")

	high := series.High()
	low := series.Low()
	closes := series.Close()
	n := series.Len()

	inAny := make([]bool, n)
	inBullish := make([]bool, n)
	inBearish := make([]bool, n)

	var bullishZones, bearishZones []fvgZone

	for i := 2; i < n; i++ {
		// Bullish gap: current low above the high two bars back.
		if gap := low[i] - high[i-2]; gap > 0 && high[i-2] > 0 && gap/high[i-2] >= minGapPct {
			bullishZones = append(bullishZones, fvgZone{origin: i, low: high[i-2], high: low[i]})
		}

		// Bearish gap: current high below the low two bars back.
		if gap := low[i-2] - high[i]; gap > 0 && low[i-2] > 0 && gap/low[i-2] >= minGapPct {
			bearishZones = append(bearishZones, fvgZone{origin: i, low: high[i], high: low[i-2]})
		}

		bullishZones = pruneZones(bullishZones, i, validity, func(z fvgZone) bool {
			// Filled when price trades deep enough back into the gap.
			return closes[i] <= z.high-fillThreshold*(z.high-z.low)
		})
		bearishZones = pruneZones(bearishZones, i, validity, func(z fvgZone) bool {
			return closes[i] >= z.low+fillThreshold*(z.high-z.low)
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
		"fair_value_gaps":         FlagColumn(inAny),
		"fair_value_gaps_bullish": FlagColumn(inBullish),
		"fair_value_gaps_bearish": FlagColumn(inBearish),
	}, nil
}

func pruneZones(zones []fvgZone, current, validity int, filled func(fvgZone) bool) []fvgZone {
	kept := zones[:0]

	for _, z := range zones {
		if current-z.origin > validity {
			continue
		}

		if filled(z) {
			continue
		}

		kept = append(kept, z)
	}

	return kept
}
