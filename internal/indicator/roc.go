package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// ROC is the Rate of Change module: percentage change of close over the
// trailing period.
type ROC struct{}

// NewROC creates the ROC module.
func NewROC() Module {
	return &ROC{}
}

// ID implements Module.
func (r *ROC) ID() types.ModuleID {
	return types.ModuleIDROC
}

// Schema implements Module.
func (r *ROC) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 12, Min: 1, Max: 200},
		},
	}
}

// Compute implements Module.
func (r *ROC) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := r.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	closes := series.Close()
	out := nanSlice(series.Len())

	for i := period; i < series.Len(); i++ {
		if closes[i-period] != 0 {
			out[i] = 100 * (closes[i] - closes[i-period]) / closes[i-period]
		}
	}

	return ColumnSet{"roc": NumericColumn(out)}, nil
}
