package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"time"

	"sportiva/internal/adapters/email"
	"sportiva/internal/adapters/storage/outbox"
	domainOutbox "sportiva/internal/domain/outbox"
)

// OutboxRetryDeps provides the dependencies for draining the outbox.
type OutboxRetryDeps struct {
	OutboxStore outbox.Store
	EmailSender email.Sender
}

// ExecuteOutboxRetry processes pending and retryable outbox entries,
// honoring per-entry exponential backoff and max attempts.
// PRE: Deps are valid and store is connected
// POST: All eligible entries are attempted once, results persisted
func ExecuteOutboxRetry(ctx context.Context, deps OutboxRetryDeps) error {
	entries, err := deps.OutboxStore.ListPending(ctx, 100)
	if err != nil {
		return fmt.Errorf("failed to list retryable outbox entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	slog.Info("outbox_retry_start", "count", len(entries))

	var processed, succeeded, failed int
	baseDelay := 1 * time.Minute
	maxDelay := 1 * time.Hour

	for _, entry := range entries {
		// Respect backoff since the last attempt.
		if !entry.LastAttemptedAt.IsZero() {
			nextRetry := entry.LastAttemptedAt.Add(entry.NextRetryDelay(baseDelay, maxDelay))
			if time.Now().Before(nextRetry) {
				slog.Debug("outbox_retry_skipped_backoff", "entry_id", entry.ID, "next_retry", nextRetry)
				continue
			}
		}
		processed++
		entry.MarkAttempt(time.Now())

		var externalID string
		var sendErr error
		switch entry.ActionType {
		case domainOutbox.ActionTypeEmail:
			externalID, sendErr = deliverEmail(ctx, deps.EmailSender, entry)
		default:
			sendErr = fmt.Errorf("unknown action type: %s", entry.ActionType)
		}

		if sendErr != nil {
			entry.MarkFailed(sendErr)
			failed++
			slog.Error("outbox_retry_failed", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts, "error", sendErr)
		} else {
			entry.MarkSuccess(externalID)
			succeeded++
			slog.Info("outbox_retry_succeeded", "entry_id", entry.ID, "action", entry.ActionType, "attempt", entry.Attempts)
		}

		if saveErr := deps.OutboxStore.Save(ctx, entry); saveErr != nil {
			slog.Error("outbox_retry_save_failed", "entry_id", entry.ID, "error", saveErr)
		}
	}

	slog.Info("outbox_retry_complete", "processed", processed, "succeeded", succeeded, "failed", failed)
	return nil
}

// deliverEmail sends one queued email through the configured sender.
// PRE: Entry payload is a roleEmailPayload-shaped JSON document
// POST: Returns the provider message ID on success
func deliverEmail(ctx context.Context, sender email.Sender, entry domainOutbox.Entry) (string, error) {
	if sender == nil {
		return "", fmt.Errorf("no email sender configured")
	}

	var payload struct {
		To      string `json:"to"`
		Subject string `json:"subject"`
		Body    string `json:"body"`
	}
	if err := json.Unmarshal([]byte(entry.Payload), &payload); err != nil {
		return "", fmt.Errorf("failed to unmarshal email payload: %w", err)
	}

	// The body carries account-supplied text (display name); escape it so a
	// crafted name cannot inject markup into the email.
	result, err := sender.Send(ctx, email.SendRequest{
		To:      []string{payload.To},
		Subject: payload.Subject,
		HTML:    "<p>" + html.EscapeString(payload.Body) + "</p>",
	})
	if err != nil {
		return "", err
	}
	return result.MessageID, nil
}

// OutboxRetryConfig holds configuration for the retry scheduler.
type OutboxRetryConfig struct {
	Interval time.Duration // how often to drain the outbox
	Enabled  bool
}

// DefaultOutboxRetryConfig returns sensible defaults.
func DefaultOutboxRetryConfig() OutboxRetryConfig {
	return OutboxRetryConfig{
		Interval: 1 * time.Minute,
		Enabled:  true,
	}
}

// StartOutboxRetryScheduler starts a background goroutine that periodically
// drains the outbox. Returns a cancel function.
// PRE: Context is valid, deps are initialized
// POST: Goroutine started; cancel stops it
func StartOutboxRetryScheduler(ctx context.Context, deps OutboxRetryDeps, cfg OutboxRetryConfig) func() {
	if !cfg.Enabled {
		return func() {}
	}

	ctx, cancel := context.WithCancel(ctx)

	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := ExecuteOutboxRetry(ctx, deps); err != nil {
					slog.Error("outbox_retry_scheduler_error", "error", err)
				}
			}
		}
	}()

	return cancel
}
