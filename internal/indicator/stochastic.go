package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Stochastic is the stochastic oscillator module. The primary column is %K;
// %D is the smoothed signal line.
type Stochastic struct{}

// NewStochastic creates the stochastic oscillator module.
func NewStochastic() Module {
	return &Stochastic{}
}

// ID implements Module.
func (s *Stochastic) ID() types.ModuleID {
	return types.ModuleIDStochastic
}

// Schema implements Module.
func (s *Stochastic) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "k_period", Label: "%K Period", Type: FieldTypeInt, Default: 14, Min: 2, Max: 200},
			{Name: "d_period", Label: "%D Period", Type: FieldTypeInt, Default: 3, Min: 1, Max: 50},
		},
	}
}

// Compute implements Module.
func (s *Stochastic) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := s.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	kPeriod := cfg.Int("k_period")
	dPeriod := cfg.Int("d_period")

	highs := rollingMax(series.High(), kPeriod)
	lows := rollingMin(series.Low(), kPeriod)
	closes := series.Close()

	k := nanSlice(series.Len())

	for i := kPeriod - 1; i < series.Len(); i++ {
		span := highs[i] - lows[i]
		if span == 0 {
			k[i] = 50
		} else {
			k[i] = 100 * (closes[i] - lows[i]) / span
		}
	}

	// %D smooths %K; skip the NaN warm-up prefix so the smoothing window only
	// sees defined values.
	d := nanSlice(series.Len())
	if series.Len() >= kPeriod-1+dPeriod {
		smoothed := sma(k[kPeriod-1:], dPeriod)
		for i, v := range smoothed {
			if !math.IsNaN(v) {
				d[kPeriod-1+i] = v
			}
		}
	}

	return ColumnSet{
		"stochastic":   NumericColumn(k),
		"stochastic_d": NumericColumn(d),
	}, nil
}
