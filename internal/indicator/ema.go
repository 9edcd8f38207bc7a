package indicator

import (
	"fmt"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// EMA is the exponential moving average module. Its output column is named
// ema_<period>, matching the configured period.
type EMA struct{}

// NewEMA creates the EMA module.
func NewEMA() Module {
	return &EMA{}
}

// ID implements Module.
func (e *EMA) ID() types.ModuleID {
	return types.ModuleIDEMA
}

// Schema implements Module.
func (e *EMA) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 20, Min: 1, Max: 500},
		},
	}
}

// Compute implements Module.
func (e *EMA) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := e.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	name := fmt.Sprintf("ema_%d", period)

	return ColumnSet{name: NumericColumn(ema(series.Close(), period))}, nil
}
