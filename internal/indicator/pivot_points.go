package indicator

import (
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// PivotPoints computes classic floor-trader pivots from the previous UTC
// day's high/low/close. The primary column is the pivot line; R1/S1/R2/S2
// are additional outputs. All bars of the first day are unavailable since no
// prior day exists.
type PivotPoints struct{}

// NewPivotPoints creates the pivot points module.
func NewPivotPoints() Module {
	return &PivotPoints{}
}

// ID implements Module.
func (p *PivotPoints) ID() types.ModuleID {
	return types.ModuleIDPivotPoints
}

// Schema implements Module.
func (p *PivotPoints) Schema() ConfigSchema {
	return ConfigSchema{Fields: []Field{}}
}

// Compute implements Module.
func (p *PivotPoints) Compute(series *types.PriceSeries, config Config) (ColumnSet, error) {
	if _, err := p.Schema().Resolve(config); err != nil {
		return nil, err
	}

	high := series.High()
	low := series.Low()
	closes := series.Close()
	times := series.Times()
	n := series.Len()

	pivot := nanSlice(n)
	r1 := nanSlice(n)
	s1 := nanSlice(n)
	r2 := nanSlice(n)
	s2 := nanSlice(n)

	// Running aggregates of the day currently forming.
	dayHigh := high[0]
	dayLow := low[0]
	dayClose := closes[0]

	// Levels computed from the completed previous day.
	havePrev := false

	var pp, pr1, ps1, pr2, ps2 float64

	sameDay := func(a, b time.Time) bool {
		au, bu := a.UTC(), b.UTC()

		return au.Year() == bu.Year() && au.YearDay() == bu.YearDay()
	}

	for i := 0; i < n; i++ {
		if i > 0 && !sameDay(times[i], times[i-1]) {
			pp = (dayHigh + dayLow + dayClose) / 3
			pr1 = 2*pp - dayLow
			ps1 = 2*pp - dayHigh
			pr2 = pp + (dayHigh - dayLow)
			ps2 = pp - (dayHigh - dayLow)
			havePrev = true

			dayHigh = high[i]
			dayLow = low[i]
		}

		if high[i] > dayHigh {
			dayHigh = high[i]
		}

		if low[i] < dayLow {
			dayLow = low[i]
		}

		dayClose = closes[i]

		if havePrev {
			pivot[i] = pp
			r1[i] = pr1
			s1[i] = ps1
			r2[i] = pr2
			s2[i] = ps2
		}
	}

	return ColumnSet{
		"pivot_points":    NumericColumn(pivot),
		"pivot_points_r1": NumericColumn(r1),
		"pivot_points_s1": NumericColumn(s1),
		"pivot_points_r2": NumericColumn(r2),
		"pivot_points_s2": NumericColumn(s2),
	}, nil
}
