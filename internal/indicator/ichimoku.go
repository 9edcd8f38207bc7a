package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Ichimoku computes the Ichimoku Cloud lines. The senkou spans are evaluated
// at the bar where they become computable rather than plotted forward, and
// the chikou span is omitted entirely: both conventions would otherwise leak
// future bars into the evaluation index.
type Ichimoku struct{}

// NewIchimoku creates the Ichimoku module.
func NewIchimoku() Module {
	return &Ichimoku{}
}

// ID implements Module.
func (ic *Ichimoku) ID() types.ModuleID {
	return types.ModuleIDIchimoku
}

// Schema implements Module.
func (ic *Ichimoku) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "tenkan_period", Label: "Tenkan Period", Type: FieldTypeInt, Default: 9, Min: 2, Max: 100},
			{Name: "kijun_period", Label: "Kijun Period", Type: FieldTypeInt, Default: 26, Min: 2, Max: 200},
			{Name: "senkou_b_period", Label: "Senkou B Period", Type: FieldTypeInt, Default: 52, Min: 2, Max: 400},
		},
	}
}

// Compute implements Module.
func (ic *Ichimoku) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := ic.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	tenkanPeriod := cfg.Int("tenkan_period")
	kijunPeriod := cfg.Int("kijun_period")
	senkouBPeriod := cfg.Int("senkou_b_period")

	high := series.High()
	low := series.Low()
	n := series.Len()

	midline := func(period int) []float64 {
		highs := rollingMax(high, period)
		lows := rollingMin(low, period)
		out := nanSlice(n)

		for i := period - 1; i < n; i++ {
			out[i] = (highs[i] + lows[i]) / 2
		}

		return out
	}

	tenkan := midline(tenkanPeriod)
	kijun := midline(kijunPeriod)
	senkouB := midline(senkouBPeriod)

	senkouA := nanSlice(n)
	for i := range senkouA {
		if !math.IsNaN(tenkan[i]) && !math.IsNaN(kijun[i]) {
			senkouA[i] = (tenkan[i] + kijun[i]) / 2
		}
	}

	return ColumnSet{
		"ichimoku_tenkan":   NumericColumn(tenkan),
		"ichimoku_kijun":    NumericColumn(kijun),
		"ichimoku_senkou_a": NumericColumn(senkouA),
		"ichimoku_senkou_b": NumericColumn(senkouB),
	}, nil
}
