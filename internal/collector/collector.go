package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"CrossSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Series map[string][]float64 // per-ticker closes, oldest first
	Errs   map[string]error
	Calls  []string
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyCloses(_ context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	m.Calls = append(m.Calls, ticker)
	if err, ok := m.Errs[ticker]; ok {
		return model.PriceSeries{}, err
	}
	if prices, ok := m.Series[ticker]; ok {
		return seriesFromPrices(ticker, start, prices), nil
	}
	days := int(end.Sub(start).Hours() / 24)
	return seriesFromPrices(ticker, start, generateMockPrices(m.Price, days)), nil
}

func seriesFromPrices(ticker string, start time.Time, prices []float64) model.PriceSeries {
	closes := make([]model.DailyClose, len(prices))
	for i, p := range prices {
		closes[i] = model.DailyClose{Date: start.AddDate(0, 0, i), Close: p}
	}
	return model.NewPriceSeries(ticker, closes)
}

func generateMockPrices(basePrice float64, count int) []float64 {
	if count < 0 {
		count = 0
	}
	prices := make([]float64, count)
	for i := 0; i < count; i++ {
		prices[i] = basePrice * (1 + float64(i-count/2)*0.001)
	}
	return prices
}

// Collector wraps a Fetcher with the containment rules of a scan: retrieval
// errors and short histories both come back as an empty series.
type Collector struct {
	Fetcher Fetcher
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher) *Collector {
	return &Collector{Fetcher: fetcher}
}

// Fetch never returns an error; callers treat an empty series as "no signal".
func (c *Collector) Fetch(ctx context.Context, ticker string, start, end time.Time) model.PriceSeries {
	if err := validateRange(ticker, start, end); err != nil {
		log.Printf("[WARN] fetch %s: %v", ticker, err)
		return model.EmptySeries(ticker)
	}

	series, err := c.Fetcher.FetchDailyCloses(ctx, ticker, start, end)
	if err != nil {
		log.Printf("[WARN] fetch %s from %s: %v", ticker, c.Fetcher.Name(), err)
		return model.EmptySeries(ticker)
	}
	if !series.Sufficient() {
		log.Printf("[INFO] not enough data for %s (n=%d), skipping", ticker, series.Len())
		return model.EmptySeries(ticker)
	}
	series.Ticker = ticker
	return series
}

func validateRange(ticker string, start, end time.Time) error {
	if ticker == "" {
		return errors.New("empty ticker")
	}
	if start.After(end) {
		return fmt.Errorf("start %s after end %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	return nil
}
