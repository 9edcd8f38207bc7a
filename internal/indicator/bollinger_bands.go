package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// BollingerBands computes the Bollinger Bands. All three bands are exported;
// conditions select one with a column hint since no single band is primary.
type BollingerBands struct{}

// NewBollingerBands creates the Bollinger Bands module.
func NewBollingerBands() Module {
	return &BollingerBands{}
}

// ID implements Module.
func (b *BollingerBands) ID() types.ModuleID {
	return types.ModuleIDBollingerBands
}

// Schema implements Module.
func (b *BollingerBands) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 20, Min: 2, Max: 200},
			{Name: "std_dev", Label: "Standard Deviations", Type: FieldTypeFloat, Default: 2.0, Min: 0.5, Max: 5, Step: 0.1},
		},
	}
}

// Compute implements Module.
func (b *BollingerBands) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := b.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	stdDev := cfg.Float("std_dev")

	closes := series.Close()
	middle := sma(closes, period)
	deviation := rollingStdDev(closes, period)

	upper := nanSlice(series.Len())
	lower := nanSlice(series.Len())

	for i := range middle {
		if !math.IsNaN(middle[i]) {
			upper[i] = middle[i] + stdDev*deviation[i]
			lower[i] = middle[i] - stdDev*deviation[i]
		}
	}

	return ColumnSet{
		"bollinger_bands_upper":  NumericColumn(upper),
		"bollinger_bands_middle": NumericColumn(middle),
		"bollinger_bands_lower":  NumericColumn(lower),
	}, nil
}
