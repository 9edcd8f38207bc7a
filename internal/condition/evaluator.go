// Package condition compiles declarative entry conditions into vectorized
// boolean signal series over a price series.
package condition

import (
	"context"
	"fmt"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/roelofgootjesgit/edgelab/internal/indicator"
	"github.com/roelofgootjesgit/edgelab/internal/logger"
	"github.com/roelofgootjesgit/edgelab/internal/types"
	"github.com/roelofgootjesgit/edgelab/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CompiledCondition is one condition bound to its resolved column, with the
// full signal series evaluated over the price series.
type CompiledCondition struct {
	Condition types.Condition
	// Column is the resolved output column name.
	Column string
	// Columns is the full output set of the condition's module, kept so risk
	// columns can be resolved from it without recomputation.
	Columns indicator.ColumnSet
	// Signal is the vectorized evaluation result.
	Signal types.SignalSeries
}

// BuildResult is the compiled condition set plus the combined entry signal.
type BuildResult struct {
	Compiled []CompiledCondition
	// Combined is the AND of all condition signals.
	Combined types.SignalSeries
	Warnings []types.Warning
}

// Evaluator compiles conditions against a module registry. Each condition's
// module is computed once over the whole series; evaluation is a single pass
// per condition, never a per-bar recomputation.
type Evaluator struct {
	registry indicator.Registry
	logger   *logger.Logger
}

// NewEvaluator creates an evaluator backed by the given module registry.
func NewEvaluator(registry indicator.Registry, l *logger.Logger) *Evaluator {
	return &Evaluator{registry: registry, logger: l}
}

// Build compiles and evaluates all conditions. Any invalid condition aborts
// the build; an empty condition list is an error since it would enter on
// every bar.
func (e *Evaluator) Build(series *types.PriceSeries, conditions []types.Condition) (*BuildResult, error) {
	if len(conditions) == 0 {
		return nil, errors.New(errors.ErrCodeNoConditions, "Build: strategy has no entry conditions")
	}

	compiled := make([]CompiledCondition, len(conditions))

	for i, cond := range conditions {
		c, err := e.compile(series, cond)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidStrategy, err, "Build: condition %d (%s)", i, cond)
		}

		compiled[i] = c
	}

	return e.assemble(series, compiled), nil
}

// BuildParallel is Build with module computations fanned out across at most
// workers goroutines. Results land in position-indexed slots, so the output
// is identical to the sequential build.
func (e *Evaluator) BuildParallel(ctx context.Context, series *types.PriceSeries, conditions []types.Condition, workers int) (*BuildResult, error) {
	if workers <= 1 || len(conditions) <= 1 {
		return e.Build(series, conditions)
	}

	compiled := make([]CompiledCondition, len(conditions))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cond := range conditions {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			c, err := e.compile(series, cond)
			if err != nil {
				return errors.Wrapf(errors.ErrCodeInvalidStrategy, err, "BuildParallel: condition %d (%s)", i, cond)
			}

			compiled[i] = c

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return e.assemble(series, compiled), nil
}

func (e *Evaluator) assemble(series *types.PriceSeries, compiled []CompiledCondition) *BuildResult {
	result := &BuildResult{Compiled: compiled}
	signals := make([]types.SignalSeries, 0, len(compiled))

	for _, c := range compiled {
		e.logger.Debug("compiled condition",
			zap.String("condition", c.Condition.String()),
			zap.String("column", c.Column),
			zap.Int("true_bars", c.Signal.Count()))

		signals = append(signals, c.Signal)
		result.Warnings = append(result.Warnings, conditionWarnings(c)...)
	}

	result.Combined = types.And(series.Len(), signals...)

	return result
}

func (e *Evaluator) compile(series *types.PriceSeries, cond types.Condition) (CompiledCondition, error) {
	if !cond.Operator.IsValid() {
		return CompiledCondition{}, errors.Newf(errors.ErrCodeUnknownOperator, "unknown operator %q", cond.Operator)
	}

	module, err := e.registry.Resolve(cond.Module)
	if err != nil {
		return CompiledCondition{}, err
	}

	config := indicator.Config(cond.Config)

	resolved, err := module.Schema().Resolve(config)
	if err != nil {
		return CompiledCondition{}, err
	}

	columns, err := module.Compute(series, config)
	if err != nil {
		return CompiledCondition{}, errors.Wrapf(errors.ErrCodeModuleCalculation, err, "module %s failed", cond.Module)
	}

	name, err := resolveColumn(columns, cond.Module, resolved, cond.ColumnHint)
	if err != nil {
		return CompiledCondition{}, err
	}

	column := columns[name]
	if column.Len() != series.Len() {
		return CompiledCondition{}, errors.Newf(errors.ErrCodeSeriesMismatch,
			"column %s has %d values for %d bars", name, column.Len(), series.Len())
	}

	signal, err := evaluate(column, cond.Operator, cond.Threshold)
	if err != nil {
		return CompiledCondition{}, err
	}

	return CompiledCondition{
		Condition: cond,
		Column:    name,
		Columns:   columns,
		Signal:    signal,
	}, nil
}

// resolveColumn picks the output column a condition reads. An explicit hint
// always wins; otherwise the module id itself, then id_<period>, then a
// unique id-prefixed column. Multiple prefix matches are an error rather
// than a silent guess.
func resolveColumn(columns indicator.ColumnSet, id types.ModuleID, config indicator.Config, hint optional.Option[string]) (string, error) {
	if hinted := hint.TakeOr(""); hinted != "" {
		if _, ok := columns[hinted]; !ok {
			return "", errors.NewDetailed(errors.ErrCodeColumnNotFound,
				fmt.Sprintf("module %s has no column %q", id, hinted),
				map[string]string{"module": string(id), "column": hinted})
		}

		return hinted, nil
	}

	if _, ok := columns[string(id)]; ok {
		return string(id), nil
	}

	if period := config.Int("period"); period > 0 {
		name := fmt.Sprintf("%s_%d", id, period)
		if _, ok := columns[name]; ok {
			return name, nil
		}
	}

	prefix := string(id) + "_"

	var matches []string

	for name := range columns {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.Newf(errors.ErrCodeColumnNotFound, "module %s exports no resolvable column", id)
	default:
		return "", errors.NewDetailed(errors.ErrCodeAmbiguousColumn,
			fmt.Sprintf("module %s exports %d candidate columns, a column hint is required", id, len(matches)),
			map[string]string{"module": string(id), "candidates": strings.Join(matches, ",")})
	}
}

// evaluate runs one operator over the whole column. Bars where the column is
// not yet available evaluate to false, as does bar 0 for crossover operators.
func evaluate(column indicator.Column, op types.Operator, threshold types.Threshold) (types.SignalSeries, error) {
	if err := checkOperatorTypes(column, op, threshold); err != nil {
		return nil, err
	}

	n := column.Len()
	signal := types.NewSignalSeries(n)

	if column.Kind == indicator.ColumnKindState {
		for i := 0; i < n; i++ {
			signal[i] = column.States[i] != "" && column.States[i] == threshold.Label
		}

		return signal, nil
	}

	values := column.Values
	t := threshold.Value

	switch op {
	case types.OperatorGreaterThan:
		for i := 0; i < n; i++ {
			signal[i] = column.Available(i) && values[i] > t
		}
	case types.OperatorLessThan:
		for i := 0; i < n; i++ {
			signal[i] = column.Available(i) && values[i] < t
		}
	case types.OperatorGreaterEqual:
		for i := 0; i < n; i++ {
			signal[i] = column.Available(i) && values[i] >= t
		}
	case types.OperatorLessEqual:
		for i := 0; i < n; i++ {
			signal[i] = column.Available(i) && values[i] <= t
		}
	case types.OperatorEqual:
		for i := 0; i < n; i++ {
			signal[i] = column.Available(i) && values[i] == t
		}
	case types.OperatorCrossesAbove:
		for i := 1; i < n; i++ {
			signal[i] = column.Available(i-1) && column.Available(i) &&
				values[i-1] <= t && values[i] > t
		}
	case types.OperatorCrossesBelow:
		for i := 1; i < n; i++ {
			signal[i] = column.Available(i-1) && column.Available(i) &&
				values[i-1] >= t && values[i] < t
		}
	}

	return signal, nil
}

func checkOperatorTypes(column indicator.Column, op types.Operator, threshold types.Threshold) error {
	if column.Kind == indicator.ColumnKindState {
		if op != types.OperatorEqual {
			return errors.Newf(errors.ErrCodeOperatorMismatch,
				"operator %s is not valid on a state column, only == is", op)
		}

		if !threshold.IsLabel() {
			return errors.New(errors.ErrCodeOperatorMismatch,
				"a state column requires a label threshold, got a number")
		}

		return nil
	}

	if threshold.IsLabel() {
		return errors.Newf(errors.ErrCodeUnknownLabel,
			"label threshold %q is not valid on a numeric column", threshold.Label)
	}

	return nil
}

func conditionWarnings(compiled CompiledCondition) []types.Warning {
	column := compiled.Columns[compiled.Column]

	available := 0
	for i := 0; i < column.Len(); i++ {
		if column.Available(i) {
			available++
		}
	}

	if available == 0 {
		return []types.Warning{{
			Code:    types.WarningCodeNeverAvailable,
			Message: fmt.Sprintf("condition %s never has data; its column stays unavailable for the whole series", compiled.Condition),
			Details: map[string]string{"column": compiled.Column},
		}}
	}

	if compiled.Signal.Count() == 0 {
		return []types.Warning{{
			Code:    types.WarningCodeNeverTrue,
			Message: fmt.Sprintf("condition %s is never satisfied", compiled.Condition),
			Details: map[string]string{"column": compiled.Column},
		}}
	}

	return nil
}
