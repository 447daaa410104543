package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"CrossSentinel/internal/collector"
	"CrossSentinel/internal/config"
	"CrossSentinel/internal/metrics"
	"CrossSentinel/internal/model"
	"CrossSentinel/internal/notifier"
	"CrossSentinel/internal/recorder"
	"CrossSentinel/internal/scanner"
	"CrossSentinel/internal/scheduler"
)

// Options adjust Build for the one-shot and test entry points.
type Options struct {
	// DryRun writes the report to Out instead of sending it.
	DryRun bool
	Out    io.Writer
	// Fetcher replaces the configured data source.
	Fetcher collector.Fetcher
}

// App holds every component of a configured process.
type App struct {
	Config    *config.Config
	Telegram  *notifier.TelegramNotifier
	Notifier  *notifier.Notifier
	Scanner   *scanner.Scanner
	Recorder  recorder.Recorder
	Metrics   *metrics.Metrics
	Scheduler *scheduler.Scheduler
	Tickers   model.TickerSet

	closers []io.Closer
}

// Build wires components from a validated config. Optional backends that fail
// to initialise are logged and left out.
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	startDate, err := cfg.ScanStart()
	if err != nil {
		return nil, fmt.Errorf("scan start date: %w", err)
	}
	a := &App{
		Config:  cfg,
		Metrics: metrics.NewMetrics(),
		Tickers: cfg.TickerSet(),
	}

	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher, err = a.newFetcher()
		if err != nil {
			return nil, err
		}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	a.Scanner = scanner.New(collector.NewCollector(fetcher), cfg.Scan.LookbackDays, a.Metrics)

	a.Telegram = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	a.Telegram.ParseMode = cfg.Telegram.ParseMode
	var sender notifier.Sender = a.Telegram
	if opts.DryRun {
		sender = &notifier.WriterSender{W: opts.Out}
	}
	a.Notifier = notifier.NewNotifier(sender, cfg.Notify.Greeting, cfg.Notify.Link, cfg.Scan.LookbackDays)
	a.Notifier.MaxAttempts = cfg.Notify.MaxAttempts
	a.Notifier.Backoff = cfg.Notify.Backoff

	a.Recorder = recorder.NewMultiRecorder(a.newRecorders(ctx)...)
	a.closers = append(a.closers, a.Recorder)

	a.Scheduler = scheduler.NewScheduler(ctx, a.Scanner, a.Notifier, a.Recorder, a.Metrics,
		a.Tickers, startDate, cfg.Scan.LookbackDays)
	return a, nil
}

func (a *App) newFetcher() (collector.Fetcher, error) {
	cfg := a.Config
	var f collector.Fetcher
	switch cfg.DataSource.Provider {
	case "yahoo":
		y := collector.NewYahooFetcher(cfg.Proxy)
		if cfg.DataSource.BaseURL != "" {
			y.BaseURL = cfg.DataSource.BaseURL
		}
		f = y
	case "binance":
		f = collector.NewBinanceFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.APISecret)
	case "alpaca":
		f = collector.NewAlpacaFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.DataSource.APISecret)
	default:
		return nil, fmt.Errorf("unknown data provider %q", cfg.DataSource.Provider)
	}

	if cfg.Cache.RedisAddr != "" {
		store := collector.NewRedisStore(cfg.Cache.RedisAddr)
		a.closers = append(a.closers, store)
		f = collector.NewCachedFetcher(f, store, cfg.Cache.TTL)
		log.Printf("[INFO] caching price history in redis at %s (ttl %s)", cfg.Cache.RedisAddr, cfg.Cache.TTL)
	}
	return f, nil
}

func (a *App) newRecorders(ctx context.Context) []recorder.Recorder {
	db := a.Config.Database
	var recs []recorder.Recorder

	if db.SQLitePath != "" {
		if r, err := recorder.NewSQLiteRecorder(db.SQLitePath); err != nil {
			log.Printf("[WARN] init sqlite recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, r)
		}
	}
	if db.MongoURI != "" {
		if r, err := recorder.NewMongoRecorder(ctx, db.MongoURI, db.MongoDatabase); err != nil {
			log.Printf("[WARN] init mongo recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, r)
		}
	}
	if db.DynamoTable != "" {
		if r, err := recorder.NewDynamoRecorder(ctx, db.DynamoTable, db.AWSRegion); err != nil {
			log.Printf("[WARN] init dynamodb recorder failed, skipping: %v", err)
		} else {
			recs = append(recs, r)
		}
	}
	if len(recs) == 0 {
		log.Println("[INFO] no history backend configured, scans are not persisted")
	}
	return recs
}

// RunOnce performs a single scan, notifies and records it.
func (a *App) RunOnce() *model.ScanResult {
	return a.Scheduler.RunNow()
}

// Close releases every backend.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
