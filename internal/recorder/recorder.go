package recorder

import (
	"context"
	"time"

	"CrossSentinel/internal/model"
)

// ScanRecord is the persisted form of one scan run.
type ScanRecord struct {
	ID         string        `json:"id" bson:"_id" dynamodbav:"scan_id"`
	StartedAt  time.Time     `json:"started_at" bson:"started_at" dynamodbav:"started_at"`
	FinishedAt time.Time     `json:"finished_at" bson:"finished_at" dynamodbav:"finished_at"`
	WindowFrom string        `json:"window_from" bson:"window_from" dynamodbav:"window_from"`
	WindowTo   string        `json:"window_to" bson:"window_to" dynamodbav:"window_to"`
	Scanned    int           `json:"scanned" bson:"scanned" dynamodbav:"scanned"`
	Skipped    int           `json:"skipped" bson:"skipped" dynamodbav:"skipped"`
	Outcome    string        `json:"outcome" bson:"outcome" dynamodbav:"outcome"`
	Matches    []MatchRecord `json:"matches" bson:"matches" dynamodbav:"matches"`
}

// MatchRecord is one crossover inside a ScanRecord.
type MatchRecord struct {
	Ticker    string  `json:"ticker" bson:"ticker" dynamodbav:"ticker"`
	CrossDate string  `json:"cross_date" bson:"cross_date" dynamodbav:"cross_date"`
	LastClose float64 `json:"last_close" bson:"last_close" dynamodbav:"last_close"`
	EMA       float64 `json:"ema" bson:"ema" dynamodbav:"ema"`
	SMA       float64 `json:"sma" bson:"sma" dynamodbav:"sma"`
}

// NewScanRecord flattens a scan result. The ID is the start time in UTC,
// which is unique per process because scans never overlap.
func NewScanRecord(r *model.ScanResult) *ScanRecord {
	rec := &ScanRecord{
		ID:         r.StartedAt.UTC().Format("20060102T150405.000Z"),
		StartedAt:  r.StartedAt.UTC(),
		FinishedAt: r.FinishedAt.UTC(),
		WindowFrom: r.Start.Format("2006-01-02"),
		WindowTo:   r.End.Format("2006-01-02"),
		Scanned:    r.Scanned,
		Skipped:    r.Skipped,
		Outcome:    string(r.Outcome),
		Matches:    make([]MatchRecord, 0, len(r.Matches)),
	}
	for _, m := range r.Matches {
		rec.Matches = append(rec.Matches, MatchRecord{
			Ticker:    m.Ticker,
			CrossDate: m.CrossDate.Format("2006-01-02"),
			LastClose: m.LastClose,
			EMA:       m.Short,
			SMA:       m.Long,
		})
	}
	return rec
}

// Recorder persists scan history for later analysis. History is write-only:
// nothing recorded feeds back into a scan.
type Recorder interface {
	RecordScan(ctx context.Context, r *model.ScanResult) error
	Close() error
}
