package model

// IndicatorPair holds the two moving averages aligned index-for-index with the
// source PriceSeries. Warm-up positions are NaN.
type IndicatorPair struct {
	Long  []float64 // SMA over LongWindow
	Short []float64 // EMA over ShortWindow
}

const (
	LongWindow  = 200
	ShortWindow = 20
)

func (p IndicatorPair) Len() int { return len(p.Long) }
