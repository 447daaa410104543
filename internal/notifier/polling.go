package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const pollRetryDelay = 5 * time.Second

// CommandHandler is called when a user command is received.
type CommandHandler func(command string) string

type telegramChat struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type telegramMessage struct {
	Text string       `json:"text"`
	Chat telegramChat `json:"chat"`
}

// telegramUpdate represents a Telegram update from long polling.
type telegramUpdate struct {
	UpdateID    int              `json:"update_id"`
	Message     *telegramMessage `json:"message"`
	ChannelPost *telegramMessage `json:"channel_post"`
}

// fromConfiguredChat matches a numeric chat id exactly and an "@name" chat id
// against the chat's public username.
func (t *TelegramNotifier) fromConfiguredChat(chat telegramChat) bool {
	if id, err := strconv.ParseInt(t.ChatID, 10, 64); err == nil {
		return chat.ID == id
	}
	if name, ok := strings.CutPrefix(t.ChatID, "@"); ok {
		return chat.Username != "" && strings.EqualFold(chat.Username, name)
	}
	return false
}

// StartPolling long-polls getUpdates and answers operator commands in the
// same chat. Blocks until ctx is cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, handler CommandHandler) {
	offset := 0
	client := &http.Client{Timeout: 35 * time.Second}
	if t.Client != nil {
		client.Transport = t.Client.Transport
	}

	for {
		select {
		case <-ctx.Done():
			log.Println("[INFO] Telegram polling stopped")
			return
		default:
		}

		apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.methodURL("getUpdates"), offset)
		req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
		if err != nil {
			log.Printf("[ERROR] create polling request: %v", err)
			pause(ctx, pollRetryDelay)
			continue
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] polling request failed: %v", err)
			pause(ctx, pollRetryDelay)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Printf("[WARN] read polling response: %v", err)
			continue
		}

		var result struct {
			OK     bool             `json:"ok"`
			Result []telegramUpdate `json:"result"`
		}
		if err := json.Unmarshal(body, &result); err != nil {
			log.Printf("[WARN] decode polling response: %v", err)
			continue
		}
		if !result.OK {
			log.Printf("[WARN] getUpdates rejected: status %d", resp.StatusCode)
			pause(ctx, pollRetryDelay)
			continue
		}

		for _, update := range result.Result {
			offset = update.UpdateID + 1
			msg := update.Message
			if msg == nil {
				msg = update.ChannelPost
			}
			if msg == nil || msg.Text == "" {
				continue
			}
			if !t.fromConfiguredChat(msg.Chat) {
				log.Printf("[WARN] ignoring command from chat %d", msg.Chat.ID)
				continue
			}
			text := strings.TrimSpace(msg.Text)
			log.Printf("[INFO] received command: %s", text)
			reply := handler(text)
			if reply != "" {
				if err := t.Send(ctx, reply); err != nil {
					log.Printf("[ERROR] send reply: %v", err)
				}
			}
		}
	}
}

func pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
