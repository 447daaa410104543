package strategy

import (
	"time"

	"CrossSentinel/internal/calculator"
	"CrossSentinel/internal/model"
)

// DefaultLookbackDays is how many trailing positions are searched for a cross.
const DefaultLookbackDays = 30

// Crossover describes the first upward cross found inside the lookback window.
type Crossover struct {
	Index int
	Date  time.Time
	Short float64
	Long  float64
}

// ComputeIndicators derives SMA(200) and EMA(20) from the series closes.
// It reports false when the series is shorter than model.MinHistory.
func ComputeIndicators(series model.PriceSeries) (model.IndicatorPair, bool) {
	if series.IsEmpty() || !series.Sufficient() {
		return model.IndicatorPair{}, false
	}
	closes := series.ClosePrices()
	return model.IndicatorPair{
		Long:  calculator.SMASeries(closes, model.LongWindow),
		Short: calculator.EMASeries(closes, model.ShortWindow),
	}, true
}

// HasRecentCrossover reports whether the short average crossed above the long
// average within the last days positions of the series.
func HasRecentCrossover(series model.PriceSeries, days int) bool {
	_, ok := FindCrossover(series, days)
	return ok
}

// FindCrossover returns the earliest upward cross within the last days
// positions. The scan starts at max(len-days, 1); positions where either
// average is still warming up never compare true.
func FindCrossover(series model.PriceSeries, days int) (Crossover, bool) {
	if days <= 0 {
		return Crossover{}, false
	}
	pair, ok := ComputeIndicators(series)
	if !ok {
		return Crossover{}, false
	}

	n := pair.Len()
	start := n - days
	if start < 1 {
		start = 1
	}
	for i := start; i < n; i++ {
		if crossedAbove(pair.Short[i-1], pair.Long[i-1], pair.Short[i], pair.Long[i]) {
			return Crossover{
				Index: i,
				Date:  series.Closes[i].Date,
				Short: pair.Short[i],
				Long:  pair.Long[i],
			}, true
		}
	}
	return Crossover{}, false
}

// crossedAbove is strict on both sides; NaN operands always yield false.
func crossedAbove(prevShort, prevLong, short, long float64) bool {
	return prevShort < prevLong && short > long
}
