package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// RSI is the Relative Strength Index module: a momentum oscillator flagging
// overbought and oversold conditions.
type RSI struct{}

// NewRSI creates the RSI module.
func NewRSI() Module {
	return &RSI{}
}

// ID implements Module.
func (r *RSI) ID() types.ModuleID {
	return types.ModuleIDRSI
}

// Schema implements Module.
func (r *RSI) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "period", Label: "Period", Type: FieldTypeInt, Default: 14, Min: 2, Max: 200, Help: "Number of bars for RSI calculation"},
			{Name: "overbought", Label: "Overbought Level", Type: FieldTypeFloat, Default: 70.0, Min: 50, Max: 90, Help: "RSI above this is overbought"},
			{Name: "oversold", Label: "Oversold Level", Type: FieldTypeFloat, Default: 30.0, Min: 10, Max: 50, Help: "RSI below this is oversold"},
		},
	}
}

// Compute implements Module. RSI = 100 - 100/(1+RS), RS = average gain over
// average loss across the trailing period.
func (r *RSI) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := r.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	period := cfg.Int("period")
	overbought := cfg.Float("overbought")
	oversold := cfg.Float("oversold")

	closes := series.Close()
	n := series.Len()

	gains := make([]float64, n)
	losses := make([]float64, n)

	for i := 1; i < n; i++ {
		delta := closes[i] - closes[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	// Rolling means over the trailing period; bar 0 carries no delta, so the
	// first defined value lands at index period.
	avgGains := sma(gains[1:], period)
	avgLosses := sma(losses[1:], period)

	rsi := nanSlice(n)
	overboughtFlags := make([]bool, n)
	oversoldFlags := make([]bool, n)

	for i := period; i < n; i++ {
		gain := avgGains[i-1]
		loss := avgLosses[i-1]

		switch {
		case math.IsNaN(gain) || math.IsNaN(loss):
			continue
		case loss == 0:
			rsi[i] = 100
		default:
			rs := gain / loss
			rsi[i] = 100 - 100/(1+rs)
		}

		overboughtFlags[i] = rsi[i] > overbought
		oversoldFlags[i] = rsi[i] < oversold
	}

	rsiColumn := NumericColumn(rsi)

	return ColumnSet{
		"rsi":            rsiColumn,
		"rsi_overbought": FlagColumnFrom(overboughtFlags, rsiColumn),
		"rsi_oversold":   FlagColumnFrom(oversoldFlags, rsiColumn),
	}, nil
}
