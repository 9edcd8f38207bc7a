package indicator

import (
	"time"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// closeSeries builds an hourly series where each bar opens and closes at the
// given value with a one-point wick on each side.
func closeSeries(closes ...float64) (*types.PriceSeries, error) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.PriceBar, len(closes))

	for i, c := range closes {
		bars[i] = types.PriceBar{
			Time:   start.Add(time.Duration(i) * time.Hour),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 100,
		}
	}

	return types.NewPriceSeries("XAUUSD", "1h", bars)
}

// barSeries builds a series from explicit bars spaced one hour apart starting
// at the given time.
func barSeries(start time.Time, bars []types.PriceBar) (*types.PriceSeries, error) {
	for i := range bars {
		bars[i].Time = start.Add(time.Duration(i) * time.Hour)
	}

	return types.NewPriceSeries("XAUUSD", "1h", bars)
}
