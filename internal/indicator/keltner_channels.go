package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// KeltnerChannels computes EMA-centered channels offset by a multiple of ATR.
type KeltnerChannels struct{}

// NewKeltnerChannels creates the Keltner Channels module.
func NewKeltnerChannels() Module {
	return &KeltnerChannels{}
}

// ID implements Module.
func (k *KeltnerChannels) ID() types.ModuleID {
	return types.ModuleIDKeltnerChannels
}

// Schema implements Module.
func (k *KeltnerChannels) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "EMA Period", Type: FieldTypeInt, Default: 20, Min: 2, Max: 200},
			{Name: "atr_period", Label: "ATR Period", Type: FieldTypeInt, Default: 10, Min: 1, Max: 200},
			{Name: "multiplier", Label: "ATR Multiplier", Type: FieldTypeFloat, Default: 2.0, Min: 0.5, Max: 10, Step: 0.1},
		},
	}
}

// Compute implements Module.
func (k *KeltnerChannels) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := k.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	atrPeriod := cfg.Int("atr_period")
	multiplier := cfg.Float("multiplier")

	middle := ema(series.Close(), period)
	atr := rma(trueRange(series.High(), series.Low(), series.Close()), atrPeriod)

	upper := nanSlice(series.Len())
	lower := nanSlice(series.Len())

	for i := range middle {
		if !math.IsNaN(middle[i]) && !math.IsNaN(atr[i]) {
			upper[i] = middle[i] + multiplier*atr[i]
			lower[i] = middle[i] - multiplier*atr[i]
		}
	}

	return ColumnSet{
		"keltner_channels_upper":  NumericColumn(upper),
		"keltner_channels_middle": NumericColumn(middle),
		"keltner_channels_lower":  NumericColumn(lower),
	}, nil
}
