package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// VWAP is the Volume Weighted Average Price module, anchored to the start of
// each UTC day so the running average resets at the session boundary.
type VWAP struct{}

// NewVWAP creates the VWAP module.
func NewVWAP() Module {
	return &VWAP{}
}

// ID implements Module.
func (v *VWAP) ID() types.ModuleID {
	return types.ModuleIDVWAP
}

// Schema implements Module.
func (v *VWAP) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "anchor", Label: "Anchor", Type: FieldTypeSelect, Default: "day", Options: []string{"day", "series"}, Help: "Reset point for the cumulative average"},
		},
	}
}

// Compute implements Module.
func (v *VWAP) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := v.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	anchor := cfg.String("anchor")
	tp := typicalPrice(series.High(), series.Low(), series.Close())
	volume := series.Volume()
	times := series.Times()

	out := nanSlice(series.Len())

	cumPV := 0.0
	cumVolume := 0.0

	for i := range tp {
		if anchor == "day" && i > 0 {
			prev := times[i-1].UTC()
			current := times[i].UTC()

			if current.YearDay() != prev.YearDay() || current.Year() != prev.Year() {
				cumPV = 0
				cumVolume = 0
			}
		}

		cumPV += tp[i] * volume[i]
		cumVolume += volume[i]

		if cumVolume > 0 {
			out[i] = cumPV / cumVolume
		}
	}

	return ColumnSet{"vwap": NumericColumn(out)}, nil
}
