package types

// SignalSeries is a boolean series aligned 1:1 with a price series index.
// True at bar t means the condition is satisfied using only information
// available at or before bar t's close.
type SignalSeries []bool

// NewSignalSeries returns an all-false signal of the given length.
func NewSignalSeries(n int) SignalSeries {
	return make(SignalSeries, n)
}

// And combines signals with logical AND. All signals must share the same
// length; with no inputs the result is all true.
func And(n int, signals ...SignalSeries) SignalSeries {
	out := make(SignalSeries, n)
	for i := range out {
		out[i] = true
	}

	for _, s := range signals {
		for i := range out {
			out[i] = out[i] && s[i]
		}
	}

	return out
}

// Count returns the number of true bars.
func (s SignalSeries) Count() int {
	count := 0

	for _, v := range s {
		if v {
			count++
		}
	}

	return count
}
