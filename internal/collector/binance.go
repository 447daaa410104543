package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	binance_connector "github.com/binance/binance-connector-go"
	"github.com/shopspring/decimal"

	"CrossSentinel/internal/model"
)

const (
	binanceBaseURL    = "https://api.binance.com"
	binanceKlineLimit = 1000
)

// BinanceFetcher implements Fetcher using Binance spot daily klines.
type BinanceFetcher struct {
	client *binance_connector.Client
	Quote  string // quote asset substituted for "USD"
}

// NewBinanceFetcher creates a fetcher. Public kline data needs no credentials.
func NewBinanceFetcher(baseURL, apiKey, apiSecret string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = binanceBaseURL
	}
	return &BinanceFetcher{
		client: binance_connector.NewClient(apiKey, apiSecret, baseURL),
		Quote:  "USDT",
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceSymbol maps "BTC-USD" to "BTCUSDT".
func (f *BinanceFetcher) binanceSymbol(ticker string) string {
	base, quote, found := strings.Cut(strings.ToUpper(ticker), "-")
	if !found {
		return base
	}
	if quote == "USD" {
		quote = f.Quote
	}
	return base + quote
}

func (f *BinanceFetcher) FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	symbol := f.binanceSymbol(ticker)
	endMs := uint64(end.UnixMilli()) - 1
	cursor := uint64(start.UnixMilli())

	var closes []model.DailyClose
	for cursor <= endMs {
		klines, err := f.client.NewKlinesService().
			Symbol(symbol).
			Interval("1d").
			StartTime(cursor).
			EndTime(endMs).
			Limit(binanceKlineLimit).
			Do(ctx)
		if err != nil {
			return model.PriceSeries{}, fmt.Errorf("binance klines %s: %w", symbol, err)
		}
		if len(klines) == 0 {
			break
		}
		for _, k := range klines {
			c, err := decimal.NewFromString(k.Close)
			if err != nil {
				return model.PriceSeries{}, fmt.Errorf("binance parse close %q: %w", k.Close, err)
			}
			closes = append(closes, model.DailyClose{
				Date:  time.UnixMilli(int64(k.OpenTime)).UTC(),
				Close: c.InexactFloat64(),
			})
		}
		if len(klines) < binanceKlineLimit {
			break
		}
		cursor = klines[len(klines)-1].OpenTime + 1
	}
	if len(closes) == 0 {
		return model.PriceSeries{}, fmt.Errorf("binance: no data for %s", symbol)
	}
	return model.NewPriceSeries(ticker, closes), nil
}
