package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// CMF is the Chaikin Money Flow module.
type CMF struct{}

// NewCMF creates the CMF module.
func NewCMF() Module {
	return &CMF{}
}

// ID implements Module.
func (c *CMF) ID() types.ModuleID {
	return types.ModuleIDCMF
}

// Schema implements Module.
func (c *CMF) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 20, Min: 2, Max: 200},
		},
	}
}

// Compute implements Module.
func (c *CMF) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := c.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	high := series.High()
	low := series.Low()
	closes := series.Close()
	volume := series.Volume()
	n := series.Len()

	mfVolume := make([]float64, n)

	for i := 0; i < n; i++ {
		span := high[i] - low[i]
		if span == 0 {
			continue
		}

		multiplier := ((closes[i] - low[i]) - (high[i] - closes[i])) / span
		mfVolume[i] = multiplier * volume[i]
	}

	mfSum := rollingSum(mfVolume, period)
	volSum := rollingSum(volume, period)

	out := nanSlice(n)

	for i := period - 1; i < n; i++ {
		if math.IsNaN(mfSum[i]) || volSum[i] == 0 {
			continue
		}

		out[i] = mfSum[i] / volSum[i]
	}

	return ColumnSet{"cmf": NumericColumn(out)}, nil
}
