package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"
)

const dayMs = int64(24 * time.Hour / time.Millisecond)

// klineServer serves daily klines for every day in the requested range,
// honouring startTime, endTime and limit like the spot API.
func klineServer(t *testing.T, closeFor func(open int64) string, requests *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v3/klines" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("symbol") != "BTCUSDT" || q.Get("interval") != "1d" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		start, _ := strconv.ParseInt(q.Get("startTime"), 10, 64)
		end, _ := strconv.ParseInt(q.Get("endTime"), 10, 64)
		limit, _ := strconv.Atoi(q.Get("limit"))
		*requests++

		rows := []any{}
		for open := (start + dayMs - 1) / dayMs * dayMs; open <= end && len(rows) < limit; open += dayMs {
			rows = append(rows, []any{
				open, "1", "1", "1", closeFor(open), "10",
				open + dayMs - 1, "10", 5, "1", "1", "0",
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rows)
	}))
}

func TestBinanceFetcher_PagesThroughKlines(t *testing.T) {
	requests := 0
	srv := klineServer(t, func(open int64) string {
		return strconv.FormatInt(open/dayMs, 10) + ".25"
	}, &requests)
	defer srv.Close()

	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewBinanceFetcher(srv.URL, "", "")
	series, err := f.FetchDailyCloses(context.Background(), "BTC-USD", start, end)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if requests != 2 {
		t.Errorf("expected 2 kline pages, got %d", requests)
	}
	if series.Len() != 1461 {
		t.Fatalf("expected 1461 closes, got %d", series.Len())
	}
	if !series.Closes[0].Date.Equal(start) {
		t.Errorf("expected first close on %s, got %s", start, series.Closes[0].Date)
	}
	if want := end.AddDate(0, 0, -1); !series.Closes[series.Len()-1].Date.Equal(want) {
		t.Errorf("expected last close on %s, got %s", want, series.Closes[series.Len()-1].Date)
	}
	if want := float64(start.UnixMilli()/dayMs) + 0.25; series.Closes[0].Close != want {
		t.Errorf("expected first close %f, got %f", want, series.Closes[0].Close)
	}
}

func TestBinanceFetcher_BadClose(t *testing.T) {
	requests := 0
	srv := klineServer(t, func(int64) string { return "n/a" }, &requests)
	defer srv.Close()

	f := NewBinanceFetcher(srv.URL, "", "")
	_, err := f.FetchDailyCloses(context.Background(), "BTC-USD", testStart, testEnd)
	if err == nil || !strings.Contains(err.Error(), `"n/a"`) {
		t.Errorf("expected close parse error, got %v", err)
	}
}

func TestBinanceFetcher_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "[]")
	}))
	defer srv.Close()

	f := NewBinanceFetcher(srv.URL, "", "")
	_, err := f.FetchDailyCloses(context.Background(), "BTC-USD", testStart, testEnd)
	if err == nil || !strings.Contains(err.Error(), "no data") {
		t.Errorf("expected no-data error, got %v", err)
	}
}

func TestAlpacaFetcher_FetchDailyCloses(t *testing.T) {
	var gotEnd, gotSymbols, gotTimeframe string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta3/crypto/us/bars" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotEnd, gotSymbols, gotTimeframe = q.Get("end"), q.Get("symbols"), q.Get("timeframe")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"bars":{"BTC/USD":[
			{"t":"2020-01-02T00:00:00Z","o":1,"h":1,"l":1,"c":7200.5,"v":1},
			{"t":"2020-01-01T00:00:00Z","o":1,"h":1,"l":1,"c":7100.25,"v":1}
		]},"next_page_token":null}`)
	}))
	defer srv.Close()

	t.Setenv("APCA_API_OAUTH", "")
	f := NewAlpacaFetcher(srv.URL, "key", "secret")
	series, err := f.FetchDailyCloses(context.Background(), "btc-usd", testStart, testEnd)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	if gotSymbols != "BTC/USD" || gotTimeframe != "1Day" {
		t.Errorf("unexpected query symbols=%s timeframe=%s", gotSymbols, gotTimeframe)
	}
	if want := "2020-12-31T23:59:59.999999999Z"; gotEnd != want {
		t.Errorf("expected exclusive end %s, got %s", want, gotEnd)
	}
	closes := series.ClosePrices()
	if len(closes) != 2 || closes[0] != 7100.25 || closes[1] != 7200.5 {
		t.Errorf("expected sorted closes [7100.25 7200.5], got %v", closes)
	}
}

func TestAlpacaFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("APCA-API-KEY-ID") == "" {
			w.WriteHeader(http.StatusForbidden)
			fmt.Fprint(w, `{"message":"forbidden"}`)
			return
		}
		fmt.Fprint(w, `{"bars":{},"next_page_token":null}`)
	}))
	defer srv.Close()

	t.Setenv("APCA_API_KEY_ID", "")
	t.Setenv("APCA_API_OAUTH", "")
	_, err := NewAlpacaFetcher(srv.URL, "", "").FetchDailyCloses(context.Background(), "BTC-USD", testStart, testEnd)
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("expected forbidden error, got %v", err)
	}

	_, err = NewAlpacaFetcher(srv.URL, "key", "secret").FetchDailyCloses(context.Background(), "BTC-USD", testStart, testEnd)
	if err == nil || !strings.Contains(err.Error(), "no data") {
		t.Errorf("expected no-data error, got %v", err)
	}
}
