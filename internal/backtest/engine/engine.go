package engine

import (
	"context"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// Lifecycle callback types for backtest phases.
// Callbacks returning an error abort the run.

// OnRunStartCallback is called once before the simulation begins. runID is
// the unique identifier of the run, generated before processing starts.
type OnRunStartCallback func(runID string, totalBars int) error

// OnProcessDataCallback is called for each bar processed.
type OnProcessDataCallback func(current int, total int) error

// OnRunEndCallback is called after the run completes with the final result.
type OnRunEndCallback func(runID string, result *types.BacktestResult)

// LifecycleCallbacks holds the lifecycle callback functions for the backtest
// engine. All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnRunStart    *OnRunStartCallback
	OnProcessData *OnProcessDataCallback
	OnRunEnd      *OnRunEndCallback
}

// Engine runs a declarative strategy over a price series.
type Engine interface {
	// Initialize the engine with the given YAML configuration content.
	Initialize(config string) error
	// Run evaluates the entry conditions over the series and simulates the
	// resulting trades. The context can be used to cancel the run.
	Run(ctx context.Context, series *types.PriceSeries, conditions []types.Condition, risk types.RiskParams, callbacks LifecycleCallbacks) (*types.BacktestResult, error)
	// GetConfigSchema returns the JSON schema of the engine configuration.
	GetConfigSchema() (string, error)
}
