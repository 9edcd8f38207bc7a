package engine

import (
	"context"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/roelofgootjesgit/edgelab/internal/backtest/engine"
	"github.com/roelofgootjesgit/edgelab/internal/condition"
	"github.com/roelofgootjesgit/edgelab/internal/indicator"
	"github.com/roelofgootjesgit/edgelab/internal/logger"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// BacktestEngineV1 evaluates declarative conditions over a price series and
// simulates the resulting trades. One engine value can serve multiple runs;
// each run owns its result exclusively.
type BacktestEngineV1 struct {
	config      BacktestEngineV1Config
	log         *logger.Logger
	registry    indicator.Registry
	validate    *validator.Validate
	initialized bool
}

// NewBacktestEngineV1 creates a new backtest engine with the default module
// registry. Initialize must be called before Run.
func NewBacktestEngineV1(log *logger.Logger) *BacktestEngineV1 {
	return &BacktestEngineV1{
		config:   DefaultConfig(),
		log:      log,
		registry: indicator.NewDefaultRegistry(),
		validate: validator.New(),
	}
}

// SetRegistry replaces the module registry, allowing callers to add custom
// modules before running.
func (b *BacktestEngineV1) SetRegistry(registry indicator.Registry) {
	b.registry = registry
}

// Initialize parses the YAML engine configuration. An empty string keeps the
// defaults.
func (b *BacktestEngineV1) Initialize(config string) error {
	cfg := DefaultConfig()

	if config != "" {
		if err := yaml.Unmarshal([]byte(config), &cfg); err != nil {
			return errors.Wrap(errors.ErrCodeEngineConfigError, "Initialize: invalid YAML", err)
		}
	}

	if err := b.validate.Struct(&cfg); err != nil {
		return errors.Wrap(errors.ErrCodeEngineConfigError, "Initialize: invalid configuration", err)
	}

	b.config = cfg
	b.initialized = true

	b.log.Debug("engine initialized",
		zap.Int("max_candles", cfg.MaxCandles),
		zap.Int("max_conditions", cfg.MaxConditions),
		zap.Int("workers", cfg.Workers))

	return nil
}

// GetConfigSchema returns the JSON schema of the engine configuration.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	return b.config.GenerateSchemaJSON()
}

// Run implements engine.Engine.
func (b *BacktestEngineV1) Run(ctx context.Context, series *types.PriceSeries, conditions []types.Condition, risk types.RiskParams, callbacks engine.LifecycleCallbacks) (*types.BacktestResult, error) {
	if !b.initialized {
		return nil, errors.New(errors.ErrCodeEngineNotInitialized, "Run: engine not initialized")
	}

	if series == nil {
		return nil, errors.New(errors.ErrCodeEmptySeries, "Run: nil price series")
	}

	if err := b.validate.Struct(&risk); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRiskParams, "Run: invalid risk parameters", err)
	}

	windowed, err := b.applyWindow(series)
	if err != nil {
		return nil, err
	}

	if err := b.checkLimits(windowed, conditions); err != nil {
		return nil, err
	}

	runID := uuid.New().String()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, windowed.Len()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeRunCancelled, "Run: aborted by callback", err)
		}
	}

	evaluator := condition.NewEvaluator(b.registry, b.log)

	built, err := evaluator.BuildParallel(ctx, windowed, conditions, b.config.Workers)
	if err != nil {
		return nil, err
	}

	riskDistance, err := resolveRiskDistance(windowed, built, risk)
	if err != nil {
		return nil, err
	}

	simulator := newTradeSimulator(windowed, risk, riskDistance)
	if callbacks.OnProcessData != nil {
		simulator.onBar = *callbacks.OnProcessData
	}

	trades, warnings, err := simulator.run(ctx, built.Combined)
	if err != nil {
		return nil, err
	}

	result := &types.BacktestResult{
		Trades: trades,
		Diagnostics: types.Diagnostics{
			RunID:          runID,
			BarsProcessed:  windowed.Len(),
			ConditionsUsed: len(conditions),
			Warnings:       append(built.Warnings, warnings...),
		},
	}

	b.log.Info("backtest run complete",
		zap.String("run_id", runID),
		zap.String("symbol", windowed.Symbol()),
		zap.Int("bars", windowed.Len()),
		zap.Int("entry_signals", built.Combined.Count()),
		zap.Int("trades", len(trades)),
		zap.Int("warnings", len(result.Diagnostics.Warnings)))

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(runID, result)
	}

	return result, nil
}

// applyWindow narrows the series to the configured start/end time window.
func (b *BacktestEngineV1) applyWindow(series *types.PriceSeries) (*types.PriceSeries, error) {
	if b.config.StartTime.IsNone() && b.config.EndTime.IsNone() {
		return series, nil
	}

	times := series.Times()
	bars := make([]types.PriceBar, 0, series.Len())

	for i := 0; i < series.Len(); i++ {
		if start, err := b.config.StartTime.Take(); err == nil && times[i].Before(start) {
			continue
		}

		if end, err := b.config.EndTime.Take(); err == nil && times[i].After(end) {
			continue
		}

		bars = append(bars, series.Bar(i))
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound,
			"applyWindow: no bars inside the configured window for %s", series.Symbol())
	}

	return types.NewPriceSeries(series.Symbol(), series.Timeframe(), bars)
}

func (b *BacktestEngineV1) checkLimits(series *types.PriceSeries, conditions []types.Condition) error {
	if series.Len() > b.config.MaxCandles {
		return errors.Newf(errors.ErrCodeTooManyCandles,
			"series has %d bars, limit is %d", series.Len(), b.config.MaxCandles)
	}

	if len(conditions) > b.config.MaxConditions {
		return errors.Newf(errors.ErrCodeTooManyConditions,
			"strategy has %d conditions, limit is %d", len(conditions), b.config.MaxConditions)
	}

	for _, cond := range conditions {
		module, err := b.registry.Resolve(cond.Module)
		if err != nil {
			return err
		}

		resolved, err := module.Schema().Resolve(indicator.Config(cond.Config))
		if err != nil {
			return err
		}

		for name, value := range resolved {
			if !periodLike(name) {
				continue
			}

			if period, ok := value.(int); ok && period > b.config.MaxPeriod {
				return errors.Newf(errors.ErrCodePeriodTooLarge,
					"module %s: %s=%d exceeds the period limit %d", cond.Module, name, period, b.config.MaxPeriod)
			}
		}
	}

	return nil
}

func periodLike(name string) bool {
	return strings.Contains(name, "period") || strings.Contains(name, "lookback")
}

// resolveRiskDistance builds the per-bar price distance defining 1R. The
// default is a fixed percentage of the bar close; when the risk parameters
// name a structure column, the distance from the close to that level takes
// over on bars where the level is available.
func resolveRiskDistance(series *types.PriceSeries, built *condition.BuildResult, risk types.RiskParams) ([]float64, error) {
	closes := series.Close()
	distance := make([]float64, series.Len())

	for i := range distance {
		distance[i] = risk.RiskPct / 100 * closes[i]
	}

	name, err := risk.RiskColumn.Take()
	if err != nil {
		return distance, nil
	}

	var column indicator.Column

	found := false

	for _, compiled := range built.Compiled {
		if c, ok := compiled.Columns[name]; ok {
			column = c
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Newf(errors.ErrCodeRiskColumnNotFound,
			"no condition module exports risk column %q", name)
	}

	if column.Kind == indicator.ColumnKindState {
		return nil, errors.Newf(errors.ErrCodeRiskColumnMismatch,
			"risk column %q is categorical, a price level column is required", name)
	}

	for i := range distance {
		if !column.Available(i) {
			continue
		}

		d := math.Abs(closes[i] - column.Values[i])
		if d > 0 {
			distance[i] = d
		} else {
			// Entry exactly at the structure level has no measurable risk.
			distance[i] = math.NaN()
		}
	}

	return distance, nil
}
