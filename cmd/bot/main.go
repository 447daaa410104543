package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CrossSentinel/internal/app"
	"CrossSentinel/internal/config"
	"CrossSentinel/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CrossSentinel starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := app.Build(ctx, cfg, app.Options{})
	if err != nil {
		log.Fatalf("[FATAL] build: %v", err)
	}
	defer a.Close()
	log.Printf("[INFO] watching %d tickers", len(a.Tickers))

	sched := a.Scheduler
	if err := sched.Register(cfg.Schedule.Cron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go a.Telegram.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional status server
	var srv *server.Server
	if cfg.Server.ListenAddr != "" {
		srv = server.New(cfg.Server.ListenAddr, sched, a.Metrics, a.Tickers)
		go func() {
			if err := srv.Start(); err != nil {
				log.Printf("[ERROR] status server: %v", err)
			}
		}()
	}

	if cfg.Schedule.RunOnStart {
		log.Println("[INFO] run_on_start enabled, executing scan now")
		go sched.RunNow()
	}

	log.Println("[INFO] CrossSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	if srv != nil {
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] status server shutdown: %v", err)
		}
		done()
	}
	log.Println("[INFO] CrossSentinel stopped")
}
