// Package email sends transactional mail through an external provider.
// All sends go through the outbox worker, never directly from a request.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send one email.
type SendRequest struct {
	To      []string
	From    string // defaults to the sender's configured address
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult contains the provider's response.
type SendResult struct {
	MessageID string // provider message ID for tracking
	SentAt    time.Time
}

// Sender delivers email via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
