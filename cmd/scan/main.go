// Command scan runs a single crossover scan and exits.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"CrossSentinel/internal/app"
	"CrossSentinel/internal/config"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	cfgPath := flag.String("config", defaultPath, "path to the YAML config file")
	dryRun := flag.Bool("dry-run", false, "print the report instead of sending it (no Telegram credentials needed)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	validate := cfg.Validate
	if *dryRun {
		validate = cfg.ValidateScan
	}
	if err := validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, cfg, app.Options{DryRun: *dryRun, Out: os.Stdout})
	if err != nil {
		log.Fatalf("[FATAL] build: %v", err)
	}
	defer a.Close()

	r := a.RunOnce()
	log.Printf("[INFO] done: %d matches, delivery %s", len(r.Matches), r.Outcome)
}
