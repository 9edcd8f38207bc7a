package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Price exposes the close series as a column so raw price can appear on the
// left side of a condition.
type Price struct{}

// NewPrice creates the price module.
func NewPrice() Module {
	return &Price{}
}

// ID implements Module.
func (p *Price) ID() types.ModuleID {
	return types.ModuleIDPrice
}

// Schema implements Module.
func (p *Price) Schema() ConfigSchema {
	return ConfigSchema{}
}

// Compute implements Module.
func (p *Price) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	if _, err := p.Schema().Resolve(config); err != nil {
		return nil, err
	}

	closes := series.Close()
	values := make([]float64, len(closes))
	copy(values, closes)

	return ColumnSet{
		"price": NumericColumn(values),
	}, nil
}
