package model

import (
	"sort"
	"time"
)

// MinHistory is the number of daily closes a series needs before it is analysed.
const MinHistory = 200

// DailyClose is one daily bar reduced to its closing price.
type DailyClose struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds the daily closes of one ticker, ascending by date.
type PriceSeries struct {
	Ticker string
	Closes []DailyClose
}

// NewPriceSeries sorts closes by date and collapses duplicate dates, keeping the
// last observation for each day.
func NewPriceSeries(ticker string, closes []DailyClose) PriceSeries {
	sorted := make([]DailyClose, len(closes))
	copy(sorted, closes)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	out := sorted[:0]
	for _, c := range sorted {
		if n := len(out); n > 0 && sameDay(out[n-1].Date, c.Date) {
			out[n-1] = c
			continue
		}
		out = append(out, c)
	}
	return PriceSeries{Ticker: ticker, Closes: out}
}

// EmptySeries returns a series with no observations.
func EmptySeries(ticker string) PriceSeries {
	return PriceSeries{Ticker: ticker}
}

func (s PriceSeries) Len() int { return len(s.Closes) }

func (s PriceSeries) IsEmpty() bool { return len(s.Closes) == 0 }

// Sufficient reports whether the series has enough history for analysis.
func (s PriceSeries) Sufficient() bool { return len(s.Closes) >= MinHistory }

// ClosePrices extracts the closing prices in series order.
func (s PriceSeries) ClosePrices() []float64 {
	prices := make([]float64, len(s.Closes))
	for i, c := range s.Closes {
		prices[i] = c.Close
	}
	return prices
}

// Last returns the most recent close. ok is false for an empty series.
func (s PriceSeries) Last() (DailyClose, bool) {
	if len(s.Closes) == 0 {
		return DailyClose{}, false
	}
	return s.Closes[len(s.Closes)-1], true
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
