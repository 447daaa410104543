package notifier

import (
	"fmt"
	"strings"
	"time"

	"CrossSentinel/internal/model"
)

const (
	DefaultLink = "https://cryptochart.streamlit.app/"
	signOff     = "CrossSentinel"
)

// FormatCrossoverReport renders the plain-text scan notification.
func FormatCrossoverReport(greeting string, tickers []string, link string, lookbackDays int) string {
	var b strings.Builder
	if greeting != "" {
		b.WriteString(greeting)
		b.WriteString("\n\n")
	}
	b.WriteString(fmt.Sprintf("The EMA 20 crossed above the SMA 200 within the last %d days for:\n\n", lookbackDays))
	b.WriteString(strings.Join(tickers, "\n"))
	b.WriteString("\n")
	if link != "" {
		b.WriteString(fmt.Sprintf("\nCharts and details: %s\n", link))
	}
	b.WriteString(fmt.Sprintf("\nRegards,\n%s", signOff))
	return b.String()
}

// FormatStatus summarises the last scan for the /status command.
func FormatStatus(r *model.ScanResult) string {
	if r == nil {
		return "No scan has run yet."
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Last scan: %s (%s)\n", r.FinishedAt.Format("2006-01-02 15:04"), r.FinishedAt.Sub(r.StartedAt).Round(time.Second)))
	b.WriteString(fmt.Sprintf("Window: %s to %s\n", r.Start.Format("2006-01-02"), r.End.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Scanned: %d | Skipped: %d | Matches: %d\n", r.Scanned, r.Skipped, len(r.Matches)))
	for _, m := range r.Matches {
		b.WriteString(fmt.Sprintf("  %s crossed %s, close %.4f\n", m.Ticker, m.CrossDate.Format("2006-01-02"), m.LastClose))
	}
	b.WriteString(fmt.Sprintf("Delivery: %s", r.Outcome))
	return b.String()
}

// FormatTickers lists the configured ticker set for the /tickers command.
func FormatTickers(tickers model.TickerSet) string {
	return fmt.Sprintf("Watching %d tickers:\n%s", len(tickers), strings.Join(tickers, ", "))
}
