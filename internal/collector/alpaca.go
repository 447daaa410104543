package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"CrossSentinel/internal/model"
)

// AlpacaFetcher implements Fetcher using Alpaca crypto bars.
type AlpacaFetcher struct {
	client *marketdata.Client
}

// NewAlpacaFetcher creates a fetcher from API credentials. An empty baseURL
// selects the public data endpoint.
func NewAlpacaFetcher(baseURL, apiKey, apiSecret string) *AlpacaFetcher {
	return &AlpacaFetcher{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}),
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaSymbol maps "BTC-USD" to "BTC/USD".
func alpacaSymbol(ticker string) string {
	return strings.Replace(strings.ToUpper(ticker), "-", "/", 1)
}

func (f *AlpacaFetcher) FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	if err := ctx.Err(); err != nil {
		return model.PriceSeries{}, err
	}
	symbol := alpacaSymbol(ticker)
	bars, err := f.client.GetCryptoBars(symbol, marketdata.GetCryptoBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end.Add(-time.Nanosecond),
	})
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("alpaca bars %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return model.PriceSeries{}, fmt.Errorf("alpaca: no data for %s", symbol)
	}

	closes := make([]model.DailyClose, 0, len(bars))
	for _, bar := range bars {
		closes = append(closes, model.DailyClose{Date: bar.Timestamp.UTC(), Close: bar.Close})
	}
	return model.NewPriceSeries(ticker, closes), nil
}
