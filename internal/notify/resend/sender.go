// Package resend adapts the Resend SDK to the notify.Sender port.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/forcedowels/storefront/internal/notify"
)

type Sender struct {
	client *resend.Client
}

func New(apiKey string) *Sender {
	return &Sender{client: resend.NewClient(apiKey)}
}

func (s *Sender) Send(ctx context.Context, email notify.Email) error {
	req := &resend.SendEmailRequest{
		From:    email.From,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
	}
	if email.ReplyTo != "" {
		req.ReplyTo = email.ReplyTo
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
