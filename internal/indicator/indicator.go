// Package indicator implements the module computation layer: stateless,
// vectorized technical-indicator transforms over an immutable price series.
package indicator

import (
	"math"

	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// ColumnKind describes how a derived column is interpreted by the condition
// evaluator.
type ColumnKind string

const (
	// ColumnKindNumeric is a float series; NaN marks "not yet available".
	ColumnKindNumeric ColumnKind = "numeric"
	// ColumnKindFlag is a boolean series stored as 0/1; NaN marks "not yet
	// available".
	ColumnKindFlag ColumnKind = "flag"
	// ColumnKindState is a categorical series; "" marks "not yet available".
	ColumnKindState ColumnKind = "state"
)

// Column is one derived series aligned 1:1 with the price series index.
type Column struct {
	Kind   ColumnKind
	Values []float64
	States []string
}

// NumericColumn wraps a float series.
func NumericColumn(values []float64) Column {
	return Column{Kind: ColumnKindNumeric, Values: values}
}

// FlagColumn converts a boolean series into a 0/1 column.
func FlagColumn(flags []bool) Column {
	values := make([]float64, len(flags))
	for i, f := range flags {
		if f {
			values[i] = 1
		}
	}

	return Column{Kind: ColumnKindFlag, Values: values}
}

// FlagColumnFrom converts a boolean series into a 0/1 column whose
// availability follows the source column: a derived flag carries no value on
// bars where the series it was computed from has none.
func FlagColumnFrom(flags []bool, source Column) Column {
	column := FlagColumn(flags)
	for i := range column.Values {
		if !source.Available(i) {
			column.Values[i] = math.NaN()
		}
	}

	return column
}

// StateColumn wraps a categorical series.
func StateColumn(states []string) Column {
	return Column{Kind: ColumnKindState, States: states}
}

// Len returns the column length.
func (c Column) Len() int {
	if c.Kind == ColumnKindState {
		return len(c.States)
	}

	return len(c.Values)
}

// Available reports whether the column holds a usable value at bar i.
func (c Column) Available(i int) bool {
	if c.Kind == ColumnKindState {
		return c.States[i] != ""
	}

	return !math.IsNaN(c.Values[i])
}

// ColumnSet maps column name to column. Every module output is a fresh set;
// modules never mutate the price series they read.
type ColumnSet map[string]Column

// Module is a stateless unit of computation: given a price series and a
// resolved configuration it produces one or more derived columns aligned to
// the series index. Implementations must be pure functions of their inputs.
type Module interface {
	// ID returns the registry identifier of the module.
	ID() types.ModuleID
	// Schema declares the configuration fields the module accepts.
	Schema() ConfigSchema
	// Compute derives the module's output columns. Leading bars without
	// sufficient history are filled with the column kind's availability
	// marker, never a fabricated value.
	Compute(series *types.PriceSeries, config Config) (ColumnSet, error)
}
