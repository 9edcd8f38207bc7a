package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// WilliamsR is the Williams %R module, ranging from -100 to 0.
type WilliamsR struct{}

// NewWilliamsR creates the Williams %R module.
func NewWilliamsR() Module {
	return &WilliamsR{}
}

// ID implements Module.
func (w *WilliamsR) ID() types.ModuleID {
	return types.ModuleIDWilliamsR
}

// Schema implements Module.
func (w *WilliamsR) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 14, Min: 2, Max: 200},
		},
	}
}

// Compute implements Module.
func (w *WilliamsR) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := w.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	highs := rollingMax(series.High(), period)
	lows := rollingMin(series.Low(), period)
	closes := series.Close()

	out := nanSlice(series.Len())

	for i := period - 1; i < series.Len(); i++ {
		span := highs[i] - lows[i]
		if span == 0 {
			out[i] = -50
		} else {
			out[i] = -100 * (highs[i] - closes[i]) / span
		}
	}

	return ColumnSet{"williams_r": NumericColumn(out)}, nil
}
