package notifier

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"CrossSentinel/internal/model"
)

const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 5 * time.Second
)

// Notifier formats a crossover report and delivers it with bounded retry.
type Notifier struct {
	Sender      Sender
	Greeting    string
	Link        string
	Lookback    int
	MaxAttempts int
	Backoff     time.Duration
	// Sleep pauses between attempts. Tests replace it to avoid wall-clock delay.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewNotifier creates a Notifier with the default retry policy.
func NewNotifier(sender Sender, greeting, link string, lookback int) *Notifier {
	return &Notifier{
		Sender:      sender,
		Greeting:    greeting,
		Link:        link,
		Lookback:    lookback,
		MaxAttempts: DefaultMaxAttempts,
		Backoff:     DefaultBackoff,
		Sleep:       sleepContext,
	}
}

// Notify sends one report listing matches. Timeouts are retried after Backoff,
// an unauthorized credential aborts at once, and any other error is returned
// with OutcomeFailed. Exhausted and aborted deliveries return a nil error.
func (n *Notifier) Notify(ctx context.Context, matches []string) (model.DeliveryOutcome, error) {
	if len(matches) == 0 {
		return model.OutcomeNotAttempted, nil
	}
	text := FormatCrossoverReport(n.Greeting, matches, n.Link, n.Lookback)
	return n.deliver(ctx, text)
}

func (n *Notifier) deliver(ctx context.Context, text string) (model.DeliveryOutcome, error) {
	attempts := n.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	sleep := n.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		err := n.Sender.Send(ctx, text)
		switch {
		case err == nil:
			log.Printf("[INFO] notification delivered (attempt %d of %d)", attempt, attempts)
			return model.OutcomeDelivered, nil
		case errors.Is(err, ErrUnauthorized):
			log.Printf("[ERROR] bot credential rejected, giving up: %v", err)
			return model.OutcomeAborted, nil
		case errors.Is(err, ErrTimeout):
			log.Printf("[WARN] send timed out, attempt %d of %d", attempt, attempts)
			if attempt < attempts {
				if err := sleep(ctx, n.Backoff); err != nil {
					return model.OutcomeFailed, fmt.Errorf("wait before retry: %w", err)
				}
			}
		default:
			return model.OutcomeFailed, err
		}
	}
	log.Printf("[ERROR] notification not delivered after %d attempts", attempts)
	return model.OutcomeExhausted, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
