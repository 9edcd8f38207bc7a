package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Displacement flags bars with an outsized directional body, a proxy for
// institutional order flow. The direction column reports which way the
// displacement candle closed.
type Displacement struct{}

// NewDisplacement creates the displacement module.
func NewDisplacement() Module {
	return &Displacement{}
}

// ID implements Module.
func (d *Displacement) ID() types.ModuleID {
	return types.ModuleIDDisplacement
}

// Schema implements Module.
func (d *Displacement) Schema() ConfigSchema {
	return ConfigSchema{
		Fields: []Field{
			{Name: "min_body_pct", Label: "Min Body %", Type: FieldTypeFloat, Default: 70.0, Min: 50.0, Max: 95.0, Step: 5.0, Help: "Body as percent of full candle range"},
			{Name: "min_move_pct", Label: "Min Move %", Type: FieldTypeFloat, Default: 0.5, Min: 0.1, Max: 5.0, Step: 0.1, Help: "Open-to-close move as percent of open"},
		},
	}
}

// Compute implements Module.
func (d *Displacement) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	cfg, err := d.Schema().Resolve(config)
	if err != nil {
		return nil, err
	}

	minBodyPct := cfg.Float("min_body_pct") / 100.0
	minMovePct := cfg.Float("min_move_pct") / 100.0

	open := series.Open()
	high := series.High()
	low := series.Low()
	closes := series.Close()
	n := series.Len()

	detected := make([]bool, n)
	direction := make([]string, n)

	for i := 0; i < n; i++ {
		candleRange := high[i] - low[i]
		if candleRange <= 0 || open[i] <= 0 {
			continue
		}

		body := math.Abs(closes[i] - open[i])
		move := body / open[i]

		if body/candleRange >= minBodyPct && move >= minMovePct {
			detected[i] = true
			if closes[i] > open[i] {
				direction[i] = TrendBullish
			} else {
				direction[i] = TrendBearish
			}
		}
	}

	return ColumnSet{
		"displacement":           FlagColumn(detected),
		"displacement_direction": StateColumn(direction),
	}, nil
}
