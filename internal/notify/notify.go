// Package notify sends transactional email. Sends on non-critical paths are
// best-effort: a committed state change is never rolled back because a
// notification failed.
package notify

import (
	"context"
	"log/slog"
)

type Email struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
}

type Sender interface {
	Send(ctx context.Context, email Email) error
}

// BestEffort attempts the send and reports the failure as a structured
// warning instead of an error. Returns false when the send failed so callers
// can include a warning in their response.
func BestEffort(ctx context.Context, log *slog.Logger, sender Sender, email Email) bool {
	if err := sender.Send(ctx, email); err != nil {
		log.Warn("email send failed",
			slog.String("subject", email.Subject),
			slog.Any("err", err),
		)
		return false
	}
	return true
}
