package indicator

import (
	"fmt"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// SMA is the simple moving average module. Its output column is named
// sma_<period>, matching the configured period.
type SMA struct{}

// NewSMA creates the SMA module.
func NewSMA() Module {
	return &SMA{}
}

// ID implements Module.
func (s *SMA) ID() types.ModuleID {
	return types.ModuleIDSMA
}

// Schema implements Module.
func (s *SMA) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 20, Min: 1, Max: 500},
		},
	}
}

// Compute implements Module.
func (s *SMA) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := s.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	name := fmt.Sprintf("sma_%d", period)

	return ColumnSet{name: NumericColumn(sma(series.Close(), period))}, nil
}
