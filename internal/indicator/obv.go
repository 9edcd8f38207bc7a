package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// OBV is the On-Balance Volume module: a running sum of volume signed by the
// direction of the close-to-close move.
type OBV struct{}

// NewOBV creates the OBV module.
func NewOBV() Module {
	return &OBV{}
}

// ID implements Module.
func (o *OBV) ID() types.ModuleID {
	return types.ModuleIDOBV
}

// Schema implements Module.
func (o *OBV) Schema() ConfigSchema {
	return ConfigSchema{Fields: []Field{}}
}

// Compute implements Module.
func (o *OBV) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	if _, err := o.Schema().Resolve(config); err != nil {
		return nil, err
	}

	closes := series.Close()
	volume := series.Volume()

	out := make([]float64, series.Len())

	for i := 1; i < series.Len(); i++ {
		switch {
		case closes[i] > closes[i-1]:
			out[i] = out[i-1] + volume[i]
		case closes[i] < closes[i-1]:
			out[i] = out[i-1] - volume[i]
		default:
			out[i] = out[i-1]
		}
	}

	return ColumnSet{"obv": NumericColumn(out)}, nil
}
