package scanner

import (
	"context"
	"errors"
	"testing"
	"time"

	"CrossSentinel/internal/collector"
	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
)

var (
	start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end   = time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
)

func crossing() []float64 {
	prices := make([]float64, 250)
	for i := range prices {
		if i < 210 {
			prices[i] = 300 - float64(i)
		} else {
			prices[i] = 91 + 12*float64(i-209)
		}
	}
	return prices
}

func declining() []float64 {
	prices := make([]float64, 250)
	for i := range prices {
		prices[i] = 300 - float64(i)
	}
	return prices
}

func newScanner(m *collector.MockFetcher) *Scanner {
	return New(collector.NewCollector(m), 30, metrics.NewMetrics())
}

func TestScan_NoMatches(t *testing.T) {
	m := &collector.MockFetcher{Series: map[string][]float64{
		"ADA-USD": declining(),
		"BTC-USD": declining(),
		"ETH-USD": declining(),
	}}
	got := newScanner(m).FindRecentCrossovers(context.Background(), model.NewTickerSet([]string{"ETH-USD", "ADA-USD", "BTC-USD"}), start, end)
	if len(got) != 0 {
		t.Errorf("expected no matches, got %v", got)
	}
	if len(m.Calls) != 3 {
		t.Errorf("expected 3 fetches, got %d", len(m.Calls))
	}
}

func TestScan_PreservesTickerSetOrder(t *testing.T) {
	m := &collector.MockFetcher{Series: map[string][]float64{
		"SOL-USD": crossing(),
		"ADA-USD": crossing(),
		"BTC-USD": declining(),
		"ETH-USD": crossing(),
	}}
	tickers := model.NewTickerSet([]string{"SOL-USD", "ETH-USD", "BTC-USD", "ADA-USD"})
	got := newScanner(m).FindRecentCrossovers(context.Background(), tickers, start, end)

	want := []string{"ADA-USD", "ETH-USD", "SOL-USD"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScan_FailureIsolation(t *testing.T) {
	m := &collector.MockFetcher{
		Series: map[string][]float64{
			"ADA-USD": crossing(),
			"ETH-USD": crossing(),
			"NEW-USD": crossing()[:150],
		},
		Errs: map[string]error{"BAD-USD": errors.New("no data found")},
	}
	r := newScanner(m).Scan(context.Background(), model.NewTickerSet([]string{"ADA-USD", "BAD-USD", "ETH-USD", "NEW-USD"}), start, end)

	if r.Scanned != 4 {
		t.Errorf("expected 4 scanned, got %d", r.Scanned)
	}
	if r.Skipped != 2 {
		t.Errorf("expected 2 skipped, got %d", r.Skipped)
	}
	got := r.Tickers()
	if len(got) != 2 || got[0] != "ADA-USD" || got[1] != "ETH-USD" {
		t.Errorf("expected [ADA-USD ETH-USD], got %v", got)
	}
}

func TestScan_MatchDetails(t *testing.T) {
	prices := crossing()
	m := &collector.MockFetcher{Series: map[string][]float64{"BTC-USD": prices}}
	r := newScanner(m).Scan(context.Background(), model.TickerSet{"BTC-USD"}, start, end)

	if len(r.Matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(r.Matches))
	}
	match := r.Matches[0]
	if match.LastClose != prices[len(prices)-1] {
		t.Errorf("expected last close %f, got %f", prices[len(prices)-1], match.LastClose)
	}
	if !match.CrossDate.Equal(start.AddDate(0, 0, match.CrossIndex)) {
		t.Errorf("cross date %v does not line up with index %d", match.CrossDate, match.CrossIndex)
	}
	if r.Outcome != model.OutcomeNotAttempted {
		t.Errorf("expected NOT_ATTEMPTED before notification, got %s", r.Outcome)
	}
	if r.FinishedAt.Before(r.StartedAt) {
		t.Error("finish time before start time")
	}
}

func TestScan_CancelledContextStops(t *testing.T) {
	m := &collector.MockFetcher{Series: map[string][]float64{"BTC-USD": crossing()}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newScanner(m).Scan(ctx, model.TickerSet{"BTC-USD", "ETH-USD"}, start, end)
	if r.Scanned != 0 || len(m.Calls) != 0 {
		t.Errorf("expected no work after cancellation, scanned=%d calls=%d", r.Scanned, len(m.Calls))
	}
}
