package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// DataSource loads OHLCV market data into validated price series.
type DataSource interface {
	// Initialize loads market data from the given file into the source.
	// CSV and Parquet files are supported.
	Initialize(path string) error
	// Count returns the number of bars, optionally bounded by a time window.
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// GetSeries reads the bars into a validated series. Duplicate timestamps
	// are collapsed and ordering is enforced at the query level, so the
	// series constructor preconditions hold for any well-formed file.
	GetSeries(symbol string, timeframe string, start optional.Option[time.Time], end optional.Option[time.Time]) (*types.PriceSeries, error)
	// Close releases the underlying database.
	Close() error
}
