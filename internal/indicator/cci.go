package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// CCI is the Commodity Channel Index module.
type CCI struct{}

// NewCCI creates the CCI module.
func NewCCI() Module {
	return &CCI{}
}

// ID implements Module.
func (c *CCI) ID() types.ModuleID {
	return types.ModuleIDCCI
}

// Schema implements Module.
func (c *CCI) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 20, Min: 2, Max: 200},
		},
	}
}

// Compute implements Module. CCI = (TP - SMA(TP)) / (0.015 * mean deviation).
func (c *CCI) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := c.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	tp := typicalPrice(series.High(), series.Low(), series.Close())
	tpMean := sma(tp, period)

	out := nanSlice(series.Len())

	for i := period - 1; i < series.Len(); i++ {
		meanDev := 0.0
		for j := i - period + 1; j <= i; j++ {
			meanDev += math.Abs(tp[j] - tpMean[i])
		}

		meanDev /= float64(period)

		if meanDev == 0 {
			out[i] = 0
		} else {
			out[i] = (tp[i] - tpMean[i]) / (0.015 * meanDev)
		}
	}

	return ColumnSet{"cci": NumericColumn(out)}, nil
}
