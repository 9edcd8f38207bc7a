package indicator

import (
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Fibonacci computes rolling-window retracement levels between the trailing
// swing high and swing low. Levels are measured down from the window high.
type Fibonacci struct{}

// NewFibonacci creates the Fibonacci retracement module.
func NewFibonacci() Module {
	return &Fibonacci{}
}

// ID implements Module.
func (f *Fibonacci) ID() types.ModuleID {
	return types.ModuleIDFibonacci
}

// Schema implements Module.
func (f *Fibonacci) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "lookback", Label: "Lookback", Type: FieldTypeInt, Default: 50, Min: 10, Max: 500, Help: "Window for the swing high/low"},
		},
	}
}

// Compute implements Module.
func (f *Fibonacci) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := f.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	lookback := cfg.Int("lookback")
	highs := rollingMax(series.High(), lookback)
	lows := rollingMin(series.Low(), lookback)
	n := series.Len()

	level382 := nanSlice(n)
	level500 := nanSlice(n)
	level618 := nanSlice(n)

	for i := lookback - 1; i < n; i++ {
		span := highs[i] - lows[i]
		level382[i] = highs[i] - 0.382*span
		level500[i] = highs[i] - 0.5*span
		level618[i] = highs[i] - 0.618*span
	}

	return ColumnSet{
		"fibonacci_382": NumericColumn(level382),
		"fibonacci_500": NumericColumn(level500),
		"fibonacci_618": NumericColumn(level618),
	}, nil
}
