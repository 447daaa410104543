package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
)

const telegramBaseURL = "https://api.telegram.org"

var (
	// ErrTimeout marks a delivery that may succeed if retried.
	ErrTimeout = errors.New("telegram: timed out")
	// ErrUnauthorized marks a rejected bot credential. Retrying cannot help.
	ErrUnauthorized = errors.New("telegram: unauthorized")
)

// Sender delivers one text message.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// TelegramNotifier sends messages via the Telegram Bot API.
type TelegramNotifier struct {
	BotToken  string
	ChatID    string
	ParseMode string // empty sends plain text
	BaseURL   string
	Client    *http.Client
}

// NewTelegramNotifier creates a notifier with optional proxy support.
func NewTelegramNotifier(botToken, chatID, proxyURL string) *TelegramNotifier {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &TelegramNotifier{
		BotToken: botToken,
		ChatID:   chatID,
		BaseURL:  telegramBaseURL,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (t *TelegramNotifier) methodURL(method string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.BaseURL, t.BotToken, method)
}

// Send sends a message to the configured chat. Errors wrap ErrTimeout or
// ErrUnauthorized when they can be classified.
func (t *TelegramNotifier) Send(ctx context.Context, text string) error {
	payload := map[string]string{
		"chat_id": t.ChatID,
		"text":    text,
	}
	if t.ParseMode != "" {
		payload["parse_mode"] = t.ParseMode
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.methodURL("sendMessage"), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return classifyStatus(resp.StatusCode, respBody)
	}
	return nil
}

func classifyStatus(status int, body []byte) error {
	switch status {
	case http.StatusUnauthorized, http.StatusNotFound:
		return fmt.Errorf("%w: status %d, body: %s", ErrUnauthorized, status, string(body))
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return fmt.Errorf("%w: status %d", ErrTimeout, status)
	}
	return fmt.Errorf("telegram API error: status %d, body: %s", status, string(body))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
