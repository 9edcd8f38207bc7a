package indicator

import "math"

// Shared whole-series helpers. Every function returns a fresh slice aligned
// to the input, with NaN filling bars that lack sufficient history. Inputs
// are never modified.

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// sma computes the simple moving average over the trailing period.
func sma(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}

	return out
}

// ema computes the exponential moving average seeded with the SMA of the
// first period values.
func ema(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}

	alpha := 2.0 / float64(period+1)
	prev := seed / float64(period)
	out[period-1] = prev

	for i := period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}

	return out
}

// rma computes Wilder's smoothed moving average, seeded with the SMA of the
// first period values. NaN inputs inside the warm-up window propagate.
func rma(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}

	prev := seed / float64(period)
	out[period-1] = prev

	for i := period; i < len(values); i++ {
		prev = (prev*float64(period-1) + values[i]) / float64(period)
		out[i] = prev
	}

	return out
}

// rollingStdDev computes the population standard deviation over the trailing
// period.
func rollingStdDev(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	means := sma(values, period)

	for i := period - 1; i < len(values); i++ {
		sum := 0.0
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - means[i]
			sum += d * d
		}

		out[i] = math.Sqrt(sum / float64(period))
	}

	return out
}

// rollingMax computes the highest value over the trailing period.
func rollingMax(values []float64, period int) []float64 {
	out := nanSlice(len(values))

	for i := period - 1; i < len(values); i++ {
		maxV := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] > maxV {
				maxV = values[j]
			}
		}

		out[i] = maxV
	}

	return out
}

// rollingMin computes the lowest value over the trailing period.
func rollingMin(values []float64, period int) []float64 {
	out := nanSlice(len(values))

	for i := period - 1; i < len(values); i++ {
		minV := values[i]
		for j := i - period + 1; j < i; j++ {
			if values[j] < minV {
				minV = values[j]
			}
		}

		out[i] = minV
	}

	return out
}

// rollingSum computes the sum over the trailing period.
func rollingSum(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}

		if i >= period-1 {
			out[i] = sum
		}
	}

	return out
}

// trueRange computes the per-bar true range; the first bar falls back to
// high-low since it has no prior close.
func trueRange(high, low, closes []float64) []float64 {
	out := make([]float64, len(high))
	if len(high) == 0 {
		return out
	}

	out[0] = high[0] - low[0]

	for i := 1; i < len(high); i++ {
		hl := high[i] - low[i]
		hc := math.Abs(high[i] - closes[i-1])
		lc := math.Abs(low[i] - closes[i-1])
		out[i] = math.Max(hl, math.Max(hc, lc))
	}

	return out
}

// typicalPrice computes (high+low+close)/3 per bar.
func typicalPrice(high, low, closes []float64) []float64 {
	out := make([]float64, len(high))
	for i := range out {
		out[i] = (high[i] + low[i] + closes[i]) / 3
	}

	return out
}
