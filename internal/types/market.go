package types

import (
	"math"
	"time"

	"github.com/roelofgootjesgit/edgelab/pkg/errors"
)

// PriceBar is one OHLCV observation at a point in time.
type PriceBar struct {
	Time   time.Time `csv:"time"`
	Open   float64   `csv:"open"`
	High   float64   `csv:"high"`
	Low    float64   `csv:"low"`
	Close  float64   `csv:"close"`
	Volume float64   `csv:"volume"`
}

// PriceSeries is an immutable, chronologically sorted OHLCV series for a
// single symbol and timeframe. It is built once by NewPriceSeries, which
// validates the upstream provider contract (sorted, deduplicated, sane bars)
// and precomputes the column slices that vectorized indicator modules read.
//
// The column slices returned by Open/High/Low/Close/Volume/Times are shared,
// not copied. Callers must treat them as read-only; modules that need derived
// values allocate their own output columns.
type PriceSeries struct {
	symbol    string
	timeframe string
	bars      []PriceBar

	times  []time.Time
	open   []float64
	high   []float64
	low    []float64
	close  []float64
	volume []float64
}

// NewPriceSeries validates bars against the provider contract and builds the
// series. Validation failures are precondition errors: the engine never
// attempts to re-clean data mid-computation.
func NewPriceSeries(symbol string, timeframe string, bars []PriceBar) (*PriceSeries, error) {
	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptySeries, "empty price series for %s %s", symbol, timeframe)
	}

	s := &PriceSeries{
		symbol:    symbol,
		timeframe: timeframe,
		bars:      bars,
		times:     make([]time.Time, len(bars)),
		open:      make([]float64, len(bars)),
		high:      make([]float64, len(bars)),
		low:       make([]float64, len(bars)),
		close:     make([]float64, len(bars)),
		volume:    make([]float64, len(bars)),
	}

	for i, bar := range bars {
		if err := validateBar(symbol, i, bar); err != nil {
			return nil, err
		}

		if i > 0 {
			switch {
			case bar.Time.Equal(bars[i-1].Time):
				return nil, errors.Newf(errors.ErrCodeDuplicateTimestamp,
					"duplicate timestamp %s at index %d", bar.Time.Format(time.RFC3339), i)
			case bar.Time.Before(bars[i-1].Time):
				return nil, errors.Newf(errors.ErrCodeNonMonotonicSeries,
					"timestamps not strictly increasing at index %d (%s after %s)",
					i, bar.Time.Format(time.RFC3339), bars[i-1].Time.Format(time.RFC3339))
			}
		}

		s.times[i] = bar.Time
		s.open[i] = bar.Open
		s.high[i] = bar.High
		s.low[i] = bar.Low
		s.close[i] = bar.Close
		s.volume[i] = bar.Volume
	}

	return s, nil
}

func validateBar(symbol string, index int, bar PriceBar) error {
	values := [5]float64{bar.Open, bar.High, bar.Low, bar.Close, bar.Volume}
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Newf(errors.ErrCodeInvalidBar, "%s: non-finite value in bar %d", symbol, index)
		}
	}

	if bar.High < bar.Low ||
		bar.High < bar.Open || bar.High < bar.Close ||
		bar.Low > bar.Open || bar.Low > bar.Close {
		return errors.Newf(errors.ErrCodeInvalidBar, "%s: inconsistent OHLC in bar %d", symbol, index)
	}

	if bar.Volume < 0 {
		return errors.Newf(errors.ErrCodeInvalidBar, "%s: negative volume in bar %d", symbol, index)
	}

	return nil
}

// Symbol returns the series symbol.
func (s *PriceSeries) Symbol() string { return s.symbol }

// Timeframe returns the series timeframe label (e.g. "5m", "1h").
func (s *PriceSeries) Timeframe() string { return s.timeframe }

// Len returns the number of bars.
func (s *PriceSeries) Len() int { return len(s.bars) }

// Bar returns the bar at index i.
func (s *PriceSeries) Bar(i int) PriceBar { return s.bars[i] }

// Times returns the timestamp column.
func (s *PriceSeries) Times() []time.Time { return s.times }

// Open returns the open column.
func (s *PriceSeries) Open() []float64 { return s.open }

// High returns the high column.
func (s *PriceSeries) High() []float64 { return s.high }

// Low returns the low column.
func (s *PriceSeries) Low() []float64 { return s.low }

// Close returns the close column.
func (s *PriceSeries) Close() []float64 { return s.close }

// Volume returns the volume column.
func (s *PriceSeries) Volume() []float64 { return s.volume }

// Truncate returns a new series containing bars [0, n). Used by the
// no-lookahead property tests; the underlying bars are shared.
func (s *PriceSeries) Truncate(n int) (*PriceSeries, error) {
	if n <= 0 || n > len(s.bars) {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "truncate length %d out of range [1, %d]", n, len(s.bars))
	}

	return NewPriceSeries(s.symbol, s.timeframe, s.bars[:n])
}
