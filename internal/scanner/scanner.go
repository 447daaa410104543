package scanner

import (
	"context"
	"log"
	"time"

	"CrossSentinel/internal/collector"
	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
	"CrossSentinel/internal/strategy"
)

// Scanner walks a ticker set one ticker at a time and collects upward crossovers.
type Scanner struct {
	Collector *collector.Collector
	Days      int
	Metrics   *metrics.Metrics // optional
	Now       func() time.Time
}

// New creates a Scanner with the given lookback window.
func New(c *collector.Collector, days int, m *metrics.Metrics) *Scanner {
	return &Scanner{Collector: c, Days: days, Metrics: m, Now: time.Now}
}

// FindRecentCrossovers returns the matching tickers in ticker-set order.
func (s *Scanner) FindRecentCrossovers(ctx context.Context, tickers model.TickerSet, start, end time.Time) []string {
	return s.Scan(ctx, tickers, start, end).Tickers()
}

// Scan evaluates every ticker. A failing ticker is skipped and never stops the
// scan; cancelling ctx stops it between tickers.
func (s *Scanner) Scan(ctx context.Context, tickers model.TickerSet, start, end time.Time) *model.ScanResult {
	now := s.now
	result := &model.ScanResult{
		StartedAt: now(),
		Start:     start,
		End:       end,
		Matches:   []model.Match{},
		Outcome:   model.OutcomeNotAttempted,
	}

	for _, ticker := range tickers {
		if err := ctx.Err(); err != nil {
			log.Printf("[WARN] scan interrupted after %d of %d tickers: %v", result.Scanned, len(tickers), err)
			break
		}
		result.Scanned++

		fetchStart := time.Now()
		series := s.Collector.Fetch(ctx, ticker, start, end)
		s.Metrics.ObserveFetch(s.Collector.Fetcher.Name(), time.Since(fetchStart).Seconds())
		if series.IsEmpty() {
			result.Skipped++
			continue
		}

		cross, ok := strategy.FindCrossover(series, s.Days)
		if !ok {
			continue
		}
		last, _ := series.Last()
		log.Printf("[INFO] %s: EMA%d crossed above SMA%d on %s", ticker, model.ShortWindow, model.LongWindow, cross.Date.Format("2006-01-02"))
		result.Matches = append(result.Matches, model.Match{
			Ticker:     ticker,
			CrossIndex: cross.Index,
			CrossDate:  cross.Date,
			LastClose:  last.Close,
			Short:      cross.Short,
			Long:       cross.Long,
		})
	}

	result.FinishedAt = now()
	log.Printf("[INFO] scan finished: %d scanned, %d skipped, %d matches", result.Scanned, result.Skipped, len(result.Matches))
	return result
}

func (s *Scanner) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
