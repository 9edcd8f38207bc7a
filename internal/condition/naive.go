package condition

import (
	"github.com/roelofgootjesgit/edgelab/internal/indicator"
	"github.com/roelofgootjesgit/edgelab/internal/types"
)

// EvalAt evaluates one condition at a single bar, reading only that bar (and
// the prior one for crossovers) from an already-computed column. It exists as
// the reference semantics the vectorized evaluator must agree with and is
// exercised by the equivalence tests.
func EvalAt(column indicator.Column, op types.Operator, threshold types.Threshold, i int) bool {
	if column.Kind == indicator.ColumnKindState {
		return column.States[i] != "" && column.States[i] == threshold.Label
	}

	if !column.Available(i) {
		return false
	}

	value := column.Values[i]
	t := threshold.Value

	switch op {
	case types.OperatorGreaterThan:
		return value > t
	case types.OperatorLessThan:
		return value < t
	case types.OperatorGreaterEqual:
		return value >= t
	case types.OperatorLessEqual:
		return value <= t
	case types.OperatorEqual:
		return value == t
	case types.OperatorCrossesAbove:
		return i > 0 && column.Available(i-1) && column.Values[i-1] <= t && value > t
	case types.OperatorCrossesBelow:
		return i > 0 && column.Available(i-1) && column.Values[i-1] >= t && value < t
	default:
		return false
	}
}
