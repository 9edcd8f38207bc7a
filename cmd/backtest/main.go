package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/moznion/go-optional"
	backtest "github.com/roelofgootjesgit/edgelab/internal/backtest/engine"
	engine "github.com/roelofgootjesgit/edgelab/internal/backtest/engine/engine_v1"
	"github.com/roelofgootjesgit/edgelab/internal/backtest/engine/engine_v1/datasource"
	"github.com/roelofgootjesgit/edgelab/internal/backtest/writer"
	"github.com/roelofgootjesgit/edgelab/internal/logger"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/strategy"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// runAction loads the strategy and the market data, runs the backtest and
// writes the result artifacts into a per-run folder.
func runAction(ctx context.Context, cmd *cli.Command) error {
	logInstance, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logInstance.Sync()

	content, err := os.ReadFile(cmd.String("strategy"))
	if err != nil {
		return fmt.Errorf("failed to read strategy file: %w", err)
	}

	definition, err := strategy.Parse(content)
	if err != nil {
		return fmt.Errorf("failed to parse strategy: %w", err)
	}

	conditions, risk, err := definition.Compile()
	if err != nil {
		return fmt.Errorf("failed to compile strategy: %w", err)
	}

	source, err := datasource.NewDataSource(":memory:", logInstance)
	if err != nil {
		return fmt.Errorf("failed to create data source: %w", err)
	}
	defer source.Close()

	if err := source.Initialize(cmd.String("data")); err != nil {
		return fmt.Errorf("failed to load market data: %w", err)
	}

	series, err := source.GetSeries(definition.Symbol, definition.Timeframe,
		timestampOption(cmd.Timestamp("start")), timestampOption(cmd.Timestamp("end")))
	if err != nil {
		return fmt.Errorf("failed to read price series: %w", err)
	}

	engineConfig := ""
	if configPath := cmd.String("config"); configPath != "" {
		configContent, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to read engine config: %w", err)
		}

		engineConfig = string(configContent)
	}

	backtester := engine.NewBacktestEngineV1(logInstance)
	if err := backtester.Initialize(engineConfig); err != nil {
		return fmt.Errorf("failed to initialize engine: %w", err)
	}

	var (
		bar   *progressbar.ProgressBar
		runID string
	)

	onStart := backtest.OnRunStartCallback(func(id string, totalBars int) error {
		runID = id
		bar = progressbar.Default(int64(totalBars))

		return nil
	})
	onProcess := backtest.OnProcessDataCallback(func(current int, total int) error {
		return bar.Set(current)
	})

	result, err := backtester.Run(ctx, series, conditions, risk, backtest.LifecycleCallbacks{
		OnRunStart:    &onStart,
		OnProcessData: &onProcess,
	})
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	folder := filepath.Join(cmd.String("output"), fmt.Sprintf("%s_%s", definition.Symbol, runID))
	stats := types.ComputeTradeStats(result.Trades)

	if err := writer.NewResultWriter(folder).Write(result, stats); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}

	logInstance.Info("results written",
		zap.String("folder", folder),
		zap.Int("trades", stats.NumberOfTrades),
		zap.Float64("total_r", stats.TotalR),
		zap.Float64("win_rate", stats.WinRate),
	)

	return nil
}

// schemaAction prints the JSON schema of either the strategy file or the
// engine configuration file.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	var (
		schema string
		err    error
	)

	switch kind := cmd.String("kind"); kind {
	case "strategy":
		schema, err = strategy.GenerateSchemaJSON()
	case "engine":
		schema, err = engine.NewBacktestEngineV1(logger.NewNopLogger()).GetConfigSchema()
	default:
		return fmt.Errorf("unknown schema kind %q, expected strategy or engine", kind)
	}

	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	fmt.Println(schema)

	return nil
}

func timestampOption(t time.Time) optional.Option[time.Time] {
	if t.IsZero() {
		return optional.None[time.Time]()
	}

	return optional.Some(t)
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run declarative trading strategies over historical market data",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a strategy file against a market data file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the market data file (CSV or Parquet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "strategy",
						Aliases:  []string{"s"},
						Usage:    "Path to the strategy YAML file",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the engine configuration YAML file",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Folder where result artifacts are written",
						Value:   "results",
					},
					&cli.TimestampFlag{
						Name:  "start",
						Usage: "Restrict the data window start in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02", time.RFC3339},
						},
					},
					&cli.TimestampFlag{
						Name:  "end",
						Usage: "Restrict the data window end in `YYYY-MM-DD` format",
						Config: cli.TimestampConfig{
							Layouts: []string{"2006-01-02", time.RFC3339},
						},
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Print the JSON schema for configuration files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "kind",
						Usage: "Schema to print: strategy or engine",
						Value: "strategy",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
