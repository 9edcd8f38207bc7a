package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// ADX is the Average Directional Index module measuring trend strength. The
// primary column is the ADX line; +DI and -DI are additional outputs.
type ADX struct{}

// NewADX creates the ADX module.
func NewADX() Module {
	return &ADX{}
}

// ID implements Module.
func (a *ADX) ID() types.ModuleID {
	return types.ModuleIDADX
}

// Schema implements Module.
func (a *ADX) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 14, Min: 2, Max: 200},
		},
	}
}

// Compute implements Module. Wilder's smoothing throughout.
func (a *ADX) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := a.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	high := series.High()
	low := series.Low()
	n := series.Len()

	plusDM := make([]float64, n)
	minusDM := make([]float64, n)

	for i := 1; i < n; i++ {
		upMove := high[i] - high[i-1]
		downMove := low[i-1] - low[i]

		if upMove > downMove && upMove > 0 {
			plusDM[i] = upMove
		}

		if downMove > upMove && downMove > 0 {
			minusDM[i] = downMove
		}
	}

	tr := trueRange(high, low, series.Close())

	smoothedTR := rma(tr[1:], period)
	smoothedPlus := rma(plusDM[1:], period)
	smoothedMinus := rma(minusDM[1:], period)

	plusDI := nanSlice(n)
	minusDI := nanSlice(n)
	dx := nanSlice(n - 1)

	for i := period; i < n; i++ {
		trv := smoothedTR[i-1]
		if math.IsNaN(trv) || trv == 0 {
			continue
		}

		plusDI[i] = 100 * smoothedPlus[i-1] / trv
		minusDI[i] = 100 * smoothedMinus[i-1] / trv

		sum := plusDI[i] + minusDI[i]
		if sum == 0 {
			dx[i-1] = 0
		} else {
			dx[i-1] = 100 * math.Abs(plusDI[i]-minusDI[i]) / sum
		}
	}

	adx := nanSlice(n)
	// ADX smooths DX, which itself only becomes defined after the first
	// period bars.
	if n-1 >= 2*period {
		smoothed := rma(dx[period-1:], period)
		for i, v := range smoothed {
			adx[period+i] = v
		}
	}

	return ColumnSet{
		"adx":          NumericColumn(adx),
		"adx_plus_di":  NumericColumn(plusDI),
		"adx_minus_di": NumericColumn(minusDI),
	}, nil
}
