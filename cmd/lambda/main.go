// Command lambda runs one scan per invocation, typically from an EventBridge schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"CrossSentinel/internal/app"
	"CrossSentinel/internal/config"
	"CrossSentinel/internal/recorder"
)

var instance *app.App

func init() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

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
	instance, err = app.Build(context.Background(), cfg, app.Options{})
	if err != nil {
		log.Fatalf("[FATAL] build: %v", err)
	}
}

func handler(ctx context.Context) (*recorder.ScanRecord, error) {
	// invocations are serialised per container
	instance.Scheduler.Ctx = ctx
	r := instance.RunOnce()
	if r == nil {
		return nil, fmt.Errorf("scan already running")
	}
	return recorder.NewScanRecord(r), nil
}

func main() {
	lambda.Start(handler)
}
