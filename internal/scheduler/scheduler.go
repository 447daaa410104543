package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
	"CrossSentinel/internal/notifier"
	"CrossSentinel/internal/recorder"

	"github.com/robfig/cron/v3"
)

// Scanner runs one pass over a ticker set.
type Scanner interface {
	Scan(ctx context.Context, tickers model.TickerSet, start, end time.Time) *model.ScanResult
}

// Delivery notifies the operator about matches.
type Delivery interface {
	Notify(ctx context.Context, matches []string) (model.DeliveryOutcome, error)
}

// Scheduler runs scans on a cron schedule and on demand.
type Scheduler struct {
	Cron      *cron.Cron
	Scanner   Scanner
	Notifier  Delivery
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics // optional
	Tickers   model.TickerSet
	StartDate time.Time
	Lookback  int
	Now       func() time.Time
	Ctx       context.Context

	scanMu sync.Mutex // held for the duration of a scan
	mu     sync.RWMutex
	last   *model.ScanResult
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, sc Scanner, n Delivery, rec recorder.Recorder, m *metrics.Metrics, tickers model.TickerSet, startDate time.Time, lookback int) *Scheduler {
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds(), cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
		Scanner:   sc,
		Notifier:  n,
		Recorder:  rec,
		Metrics:   m,
		Tickers:   tickers,
		StartDate: startDate,
		Lookback:  lookback,
		Now:       time.Now,
		Ctx:       ctx,
	}
}

// Register adds the scan job.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, func() { s.RunNow() }); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running scan to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes a scan immediately. It returns nil without scanning when
// another scan is in progress.
func (s *Scheduler) RunNow() *model.ScanResult {
	if !s.scanMu.TryLock() {
		log.Println("[WARN] scan already running, skipping")
		return nil
	}
	defer s.scanMu.Unlock()
	return s.runScan()
}

// TriggerScan starts a scan in the background. It reports false when a scan
// is already running.
func (s *Scheduler) TriggerScan() bool {
	if !s.scanMu.TryLock() {
		return false
	}
	go func() {
		defer s.scanMu.Unlock()
		s.runScan()
	}()
	return true
}

// Last returns the most recent finished scan, or nil.
func (s *Scheduler) Last() *model.ScanResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *Scheduler) runScan() *model.ScanResult {
	log.Printf("[INFO] running scan over %d tickers", len(s.Tickers))
	result := s.Scanner.Scan(s.Ctx, s.Tickers, s.StartDate, s.now())

	if len(result.Matches) > 0 {
		outcome, err := s.Notifier.Notify(s.Ctx, result.Tickers())
		result.Outcome = outcome
		if err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
		s.Metrics.ObserveDelivery(outcome)
	} else {
		log.Printf("[INFO] no tickers with EMA %d above SMA %d in the last %d days", model.ShortWindow, model.LongWindow, s.Lookback)
	}
	s.Metrics.ObserveScan(result)

	if err := s.Recorder.RecordScan(s.Ctx, result); err != nil {
		log.Printf("[ERROR] record scan: %v", err)
	}

	s.mu.Lock()
	s.last = result
	s.mu.Unlock()
	return result
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch commandName(command) {
	case "/scan":
		if !s.TriggerScan() {
			return "A scan is already running."
		}
		return "Scan started. Send /status for the summary."
	case "/status":
		return notifier.FormatStatus(s.Last())
	case "/tickers":
		return notifier.FormatTickers(s.Tickers)
	default:
		return "Available commands:\n/scan - run a scan now\n/status - last scan summary\n/tickers - watched tickers"
	}
}

// commandName lowercases the first word and drops a "@botname" suffix.
func commandName(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}
	name, _, _ := strings.Cut(fields[0], "@")
	return strings.ToLower(name)
}

func (s *Scheduler) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
