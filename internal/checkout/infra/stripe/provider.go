// Package stripe adapts Stripe Checkout to the app.PaymentProvider port.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"

	stripego "github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
	"github.com/stripe/stripe-go/v78/webhook"

	"github.com/forcedowels/storefront/internal/checkout/app"
	"github.com/forcedowels/storefront/internal/checkout/domain"
)

type Provider struct {
	successURL string
	cancelURL  string
}

func New(secretKey, successURL, cancelURL string) *Provider {
	stripego.Key = secretKey
	return &Provider{successURL: successURL, cancelURL: cancelURL}
}

func (p *Provider) CreateSession(_ context.Context, req app.ProviderSessionRequest) (domain.Session, error) {
	params := &stripego.CheckoutSessionParams{
		Mode:          stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL:    stripego.String(p.successURL + "?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripego.String(p.cancelURL),
		CustomerEmail: stripego.String(req.CustomerEmail),
	}

	for _, item := range req.LineItems {
		params.LineItems = append(params.LineItems, &stripego.CheckoutSessionLineItemParams{
			Quantity: stripego.Int64(item.Quantity),
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String(string(stripego.CurrencyUSD)),
				UnitAmount: stripego.Int64(item.AmountCents),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(item.Name),
				},
			},
		})
	}

	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		return domain.Session{}, fmt.Errorf("stripe: create session: %w", err)
	}

	return toDomain(sess), nil
}

func (p *Provider) GetSession(_ context.Context, id string) (domain.Session, error) {
	sess, err := session.Get(id, nil)
	if err != nil {
		return domain.Session{}, fmt.Errorf("stripe: get session %s: %w", id, err)
	}
	return toDomain(sess), nil
}

// VerifyWebhook checks the signature and extracts the checkout session from a
// webhook payload. Non-checkout events return ok=false.
func VerifyWebhook(payload []byte, signature, secret string) (domain.Session, bool, error) {
	event, err := webhook.ConstructEvent(payload, signature, secret)
	if err != nil {
		return domain.Session{}, false, fmt.Errorf("stripe: webhook signature: %w", err)
	}

	switch event.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded", "checkout.session.async_payment_failed":
	default:
		return domain.Session{}, false, nil
	}

	var sess stripego.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return domain.Session{}, false, fmt.Errorf("stripe: decode session payload: %w", err)
	}

	return toDomain(&sess), true, nil
}

func toDomain(sess *stripego.CheckoutSession) domain.Session {
	return domain.Session{
		ID:            sess.ID,
		URL:           sess.URL,
		Status:        string(sess.Status),
		PaymentStatus: string(sess.PaymentStatus),
		CustomerEmail: customerEmail(sess),
		Metadata:      sess.Metadata,
	}
}

func customerEmail(sess *stripego.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}
