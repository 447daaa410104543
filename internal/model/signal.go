package model

import (
	"sort"
	"strings"
	"time"
)

// DeliveryOutcome describes what happened to the scan notification.
type DeliveryOutcome string

const (
	OutcomeNotAttempted DeliveryOutcome = "NOT_ATTEMPTED"
	OutcomeDelivered    DeliveryOutcome = "DELIVERED"
	OutcomeExhausted    DeliveryOutcome = "EXHAUSTED"
	OutcomeAborted      DeliveryOutcome = "ABORTED"
	OutcomeFailed       DeliveryOutcome = "FAILED"
)

// TickerSet is a deduplicated, sorted list of ticker symbols.
type TickerSet []string

// NewTickerSet trims, deduplicates and sorts symbols. Empty entries are dropped.
func NewTickerSet(symbols []string) TickerSet {
	seen := make(map[string]struct{}, len(symbols))
	set := make(TickerSet, 0, len(symbols))
	for _, s := range symbols {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		set = append(set, s)
	}
	sort.Strings(set)
	return set
}

// Match is one ticker whose short average crossed above its long average.
type Match struct {
	Ticker     string
	CrossIndex int
	CrossDate  time.Time
	LastClose  float64
	Short      float64
	Long       float64
}

// ScanResult is the outcome of one pass over the ticker set.
type ScanResult struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Start      time.Time
	End        time.Time
	Scanned    int
	Skipped    int
	Matches    []Match
	Outcome    DeliveryOutcome
}

// Tickers returns the matched tickers in scan order.
func (r *ScanResult) Tickers() []string {
	out := make([]string, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Ticker
	}
	return out
}
