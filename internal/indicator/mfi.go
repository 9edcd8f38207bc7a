package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// MFI is the Money Flow Index module: a volume-weighted RSI analogue.
type MFI struct{}

// NewMFI creates the MFI module.
func NewMFI() Module {
	return &MFI{}
}

// ID implements Module.
func (m *MFI) ID() types.ModuleID {
	return types.ModuleIDMFI
}

// Schema implements Module.
func (m *MFI) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 14, Min: 2, Max: 200},
		},
	}
}

// Compute implements Module.
func (m *MFI) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := m.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	tp := typicalPrice(series.High(), series.Low(), series.Close())
	volume := series.Volume()
	n := series.Len()

	positive := make([]float64, n)
	negative := make([]float64, n)

	for i := 1; i < n; i++ {
		flow := tp[i] * volume[i]
		if tp[i] > tp[i-1] {
			positive[i] = flow
		} else if tp[i] < tp[i-1] {
			negative[i] = flow
		}
	}

	posSum := rollingSum(positive[1:], period)
	negSum := rollingSum(negative[1:], period)

	out := nanSlice(n)

	for i := period; i < n; i++ {
		pos := posSum[i-1]
		neg := negSum[i-1]

		switch {
		case math.IsNaN(pos) || math.IsNaN(neg):
			continue
		case neg == 0:
			out[i] = 100
		default:
			ratio := pos / neg
			out[i] = 100 - 100/(1+ratio)
		}
	}

	return ColumnSet{"mfi": NumericColumn(out)}, nil
}
