package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// ATR is the Average True Range module.
type ATR struct{}

// NewATR creates the ATR module.
func NewATR() Module {
	return &ATR{}
}

// ID implements Module.
func (a *ATR) ID() types.ModuleID {
	return types.ModuleIDATR
}

// Schema implements Module.
func (a *ATR) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 14, Min: 1, Max: 200},
		},
	}
}

// Compute implements Module. Wilder's smoothed true range.
func (a *ATR) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := a.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	tr := trueRange(series.High(), series.Low(), series.Close())

	return ColumnSet{"atr": NumericColumn(rma(tr, period))}, nil
}
