package collector

import (
	"context"
	"time"

	"CrossSentinel/internal/model"
)

// Fetcher defines the interface for fetching daily closes over a date range.
// start is inclusive, end is exclusive.
type Fetcher interface {
	FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error)
	Name() string
}
