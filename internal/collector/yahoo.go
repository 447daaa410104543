package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CrossSentinel/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public API.
type YahooFetcher struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	return &YahooFetcher{
		BaseURL: yahooBaseURL,
		Client:  newHTTPClient(proxyURL),
		SymbolMap: map[string]string{
			// renamed assets still quoted under their old tickers elsewhere
			"MATIC-USD": "POL28321-USD",
			"RNDR-USD":  "RENDER-USD",
		},
	}
}

func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"` // null on missing days
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses requests the 1d chart between start (inclusive) and end (exclusive).
func (f *YahooFetcher) FetchDailyCloses(ctx context.Context, ticker string, start, end time.Time) (model.PriceSeries, error) {
	q := url.Values{}
	q.Set("interval", "1d")
	q.Set("period1", fmt.Sprintf("%d", start.Unix()))
	q.Set("period2", fmt.Sprintf("%d", end.Unix()))
	q.Set("events", "history")
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", f.BaseURL, url.PathEscape(f.yahooSymbol(ticker)), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, truncate(body, 200))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return model.PriceSeries{}, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return model.PriceSeries{}, fmt.Errorf("yahoo: no quote data")
	}
	closesRaw := result.Indicators.Quote[0].Close
	closes := make([]model.DailyClose, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closesRaw) || closesRaw[i] == nil {
			continue // skip null bars
		}
		date := time.Unix(ts, 0).UTC()
		if date.Before(start) || !date.Before(end) {
			continue
		}
		closes = append(closes, model.DailyClose{Date: date, Close: *closesRaw[i]})
	}
	return model.NewPriceSeries(ticker, closes), nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
