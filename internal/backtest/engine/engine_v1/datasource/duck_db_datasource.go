package datasource

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/logger"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBDataSource reads market data files through DuckDB. The file is
// exposed as a view, so CSV and Parquet get identical query handling.
type DuckDBDataSource struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDataSource creates a new DuckDB data source with the specified database
// path; use ":memory:" for an ephemeral database.
func NewDataSource(path string, logger *logger.Logger) (DataSource, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB", err)
	}

	return &DuckDBDataSource{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Initialize implements DataSource.
func (d *DuckDBDataSource) Initialize(path string) error {
	d.logger.Debug("initializing DuckDB data source", zap.String("path", path))

	if _, err := d.db.Exec(`DROP VIEW IF EXISTS market_data;`); err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop existing view", err)
	}

	reader := "read_parquet"
	if strings.HasSuffix(strings.ToLower(path), ".csv") {
		reader = "read_csv_auto"
	}

	// Squirrel doesn't cover CREATE VIEW, so this stays raw SQL.
	query := fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s('%s');`, reader, path)

	if _, err := d.db.Exec(query); err != nil {
		return errors.Wrapf(errors.ErrCodeDataSourceUnavailable, err, "failed to load %s", path)
	}

	return nil
}

// Count implements DataSource.
func (d *DuckDBDataSource) Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error) {
	builder := d.sq.Select("COUNT(DISTINCT time)").From("market_data")
	builder = applyWindow(builder, start, end)

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build count query", err)
	}

	var count int
	if err := d.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, errors.Wrap(errors.ErrCodeQueryFailed, "count query failed", err)
	}

	return count, nil
}

// GetSeries implements DataSource.
func (d *DuckDBDataSource) GetSeries(symbol string, timeframe string, start optional.Option[time.Time], end optional.Option[time.Time]) (*types.PriceSeries, error) {
	// DISTINCT ON collapses duplicate timestamps before the series
	// constructor ever sees them; ordering satisfies its monotonicity check.
	builder := d.sq.Select(
		"DISTINCT ON (time) time",
		"open", "high", "low", "close", "volume",
	).From("market_data").OrderBy("time ASC")
	builder = applyWindow(builder, start, end)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build series query", err)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "series query failed", err)
	}
	defer rows.Close()

	var bars []types.PriceBar

	for rows.Next() {
		var bar types.PriceBar
		if err := rows.Scan(&bar.Time, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan bar", err)
		}

		bar.Time = bar.Time.UTC()
		bars = append(bars, bar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "row iteration failed", err)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found for %s", symbol)
	}

	d.logger.Debug("loaded price series",
		zap.String("symbol", symbol),
		zap.String("timeframe", timeframe),
		zap.Int("bars", len(bars)))

	return types.NewPriceSeries(symbol, timeframe, bars)
}

// Close implements DataSource.
func (d *DuckDBDataSource) Close() error {
	return d.db.Close()
}

func applyWindow(builder squirrel.SelectBuilder, start optional.Option[time.Time], end optional.Option[time.Time]) squirrel.SelectBuilder {
	if s, err := start.Take(); err == nil {
		builder = builder.Where(squirrel.GtOrEq{"time": s})
	}

	if e, err := end.Take(); err == nil {
		builder = builder.Where(squirrel.LtOrEq{"time": e})
	}

	return builder
}
