package scheduler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
)

type fakeScanner struct {
	matches []string
	calls   int
	block   chan struct{}
	gotEnd  time.Time
}

func (f *fakeScanner) Scan(_ context.Context, tickers model.TickerSet, start, end time.Time) *model.ScanResult {
	f.calls++
	f.gotEnd = end
	if f.block != nil {
		<-f.block
	}
	r := &model.ScanResult{Start: start, End: end, Scanned: len(tickers), Outcome: model.OutcomeNotAttempted}
	for _, t := range f.matches {
		r.Matches = append(r.Matches, model.Match{Ticker: t})
	}
	return r
}

type fakeDelivery struct {
	outcome model.DeliveryOutcome
	err     error
	got     [][]string
}

func (f *fakeDelivery) Notify(_ context.Context, matches []string) (model.DeliveryOutcome, error) {
	f.got = append(f.got, matches)
	return f.outcome, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	results []*model.ScanResult
	err     error
}

func (f *fakeRecorder) RecordScan(_ context.Context, r *model.ScanResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return f.err
}

func (f *fakeRecorder) Close() error { return nil }

var fixedNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newTestScheduler(sc Scanner, d Delivery, rec *fakeRecorder) *Scheduler {
	s := NewScheduler(context.Background(), sc, d, rec, metrics.NewMetrics(),
		model.TickerSet{"ADA-USD", "BTC-USD", "ETH-USD"},
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), 30)
	s.Now = func() time.Time { return fixedNow }
	return s
}

func TestRunNow_NoMatchesSkipsNotification(t *testing.T) {
	sc := &fakeScanner{}
	d := &fakeDelivery{outcome: model.OutcomeDelivered}
	rec := &fakeRecorder{}
	s := newTestScheduler(sc, d, rec)

	r := s.RunNow()
	if r == nil {
		t.Fatal("expected a result")
	}
	if len(d.got) != 0 {
		t.Errorf("expected no notification, got %d", len(d.got))
	}
	if r.Outcome != model.OutcomeNotAttempted {
		t.Errorf("expected NOT_ATTEMPTED, got %s", r.Outcome)
	}
	if len(rec.results) != 1 {
		t.Errorf("expected the scan to be recorded, got %d", len(rec.results))
	}
	if !sc.gotEnd.Equal(fixedNow) {
		t.Errorf("expected scan to end now, got %v", sc.gotEnd)
	}
}

func TestRunNow_MatchesAreNotified(t *testing.T) {
	sc := &fakeScanner{matches: []string{"ADA-USD", "ETH-USD"}}
	d := &fakeDelivery{outcome: model.OutcomeDelivered}
	rec := &fakeRecorder{}
	s := newTestScheduler(sc, d, rec)

	r := s.RunNow()
	if len(d.got) != 1 || strings.Join(d.got[0], ",") != "ADA-USD,ETH-USD" {
		t.Fatalf("expected one notification with both tickers, got %v", d.got)
	}
	if r.Outcome != model.OutcomeDelivered {
		t.Errorf("expected DELIVERED, got %s", r.Outcome)
	}
	if s.Last() != r {
		t.Error("expected Last to return the finished scan")
	}
}

func TestRunNow_DeliveryAndRecordErrorsAreContained(t *testing.T) {
	sc := &fakeScanner{matches: []string{"BTC-USD"}}
	d := &fakeDelivery{outcome: model.OutcomeFailed, err: errors.New("status 400")}
	rec := &fakeRecorder{err: errors.New("disk full")}
	s := newTestScheduler(sc, d, rec)

	r := s.RunNow()
	if r == nil || r.Outcome != model.OutcomeFailed {
		t.Fatalf("expected FAILED outcome, got %+v", r)
	}
	if s.Last() == nil {
		t.Error("expected result to be kept despite recorder error")
	}
}

func TestRunNow_SkipsWhileRunning(t *testing.T) {
	sc := &fakeScanner{block: make(chan struct{})}
	s := newTestScheduler(sc, &fakeDelivery{}, &fakeRecorder{})

	if !s.TriggerScan() {
		t.Fatal("expected the first trigger to start a scan")
	}
	if s.TriggerScan() {
		t.Error("expected a second trigger to be refused")
	}
	if s.RunNow() != nil {
		t.Error("expected RunNow to skip while a scan is running")
	}
	close(sc.block)

	waitForScan(t, s)
}

func waitForScan(t *testing.T, s *Scheduler) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Last() == nil && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.Last() == nil {
		t.Fatal("background scan did not finish")
	}
}

func TestHandleCommand_ScanDoesNotBlock(t *testing.T) {
	sc := &fakeScanner{block: make(chan struct{})}
	s := newTestScheduler(sc, &fakeDelivery{}, &fakeRecorder{})

	replied := make(chan string, 1)
	go func() { replied <- s.HandleCommand("/scan") }()
	select {
	case got := <-replied:
		if !strings.HasPrefix(got, "Scan started") {
			t.Errorf("unexpected reply %q", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("/scan blocked until the scan finished")
	}
	if got := s.HandleCommand("/scan"); got != "A scan is already running." {
		t.Errorf("expected a running-scan reply, got %q", got)
	}
	close(sc.block)
	waitForScan(t, s)
}

func TestHandleCommand(t *testing.T) {
	s := newTestScheduler(&fakeScanner{matches: []string{"BTC-USD"}}, &fakeDelivery{outcome: model.OutcomeDelivered}, &fakeRecorder{})

	if got := s.HandleCommand("/status"); got != "No scan has run yet." {
		t.Errorf("unexpected status before any scan: %q", got)
	}
	if got := s.HandleCommand("/scan@CrossSentinelBot"); !strings.HasPrefix(got, "Scan started") {
		t.Errorf("expected the scan to start in the background, got %q", got)
	}
	waitForScan(t, s)
	if got := s.HandleCommand("/status"); !strings.Contains(got, "BTC-USD") {
		t.Errorf("expected scan summary with the match, got %q", got)
	}
	if got := s.HandleCommand("/STATUS"); !strings.Contains(got, "DELIVERED") {
		t.Errorf("expected status of the last scan, got %q", got)
	}
	if got := s.HandleCommand("/tickers"); !strings.Contains(got, "Watching 3 tickers") {
		t.Errorf("unexpected tickers reply %q", got)
	}
	for _, cmd := range []string{"hello", "", "   "} {
		if got := s.HandleCommand(cmd); !strings.HasPrefix(got, "Available commands") {
			t.Errorf("%q: expected help text, got %q", cmd, got)
		}
	}
}

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := newTestScheduler(&fakeScanner{}, &fakeDelivery{}, &fakeRecorder{})
	if err := s.Register("not a cron"); err == nil {
		t.Error("expected an error for an invalid cron spec")
	}
	if err := s.Register("0 0 8 * * *"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
