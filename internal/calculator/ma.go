package calculator

import "math"

// SMASeries returns the trailing simple moving average at every position.
// Positions before window-1 are NaN.
func SMASeries(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if window <= 0 || len(prices) < window {
		return out
	}
	sum := 0.0
	for i, p := range prices {
		sum += p
		if i >= window {
			sum -= prices[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMASeries returns the exponential moving average with smoothing factor
// 2/(window+1), seeded with the first observation. Positions before window-1
// are NaN.
func EMASeries(prices []float64, window int) []float64 {
	out := nanSlice(len(prices))
	if window <= 0 || len(prices) == 0 {
		return out
	}
	alpha := SmoothingFactor(window)
	ema := prices[0]
	for i, p := range prices {
		if i > 0 {
			ema = alpha*p + (1-alpha)*ema
		}
		if i >= window-1 {
			out[i] = ema
		}
	}
	return out
}

// SmoothingFactor is the EMA weight given to the newest observation.
func SmoothingFactor(window int) float64 {
	return 2.0 / float64(window+1)
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}
