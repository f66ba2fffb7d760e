package httpapi

import (
	"io"
	"net/http"

	"github.com/forcedowels/storefront/internal/apperr"
	cart "github.com/forcedowels/storefront/internal/cart/domain"
	checkoutdomain "github.com/forcedowels/storefront/internal/checkout/domain"
	orderdomain "github.com/forcedowels/storefront/internal/order/domain"
)

type cartItemRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

type guestContact struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type checkoutSessionRequest struct {
	Items         []cartItemRequest   `json:"items"`
	ShippingCents int64               `json:"shippingCents"`
	TaxCents      int64               `json:"taxCents"`
	ShippingInfo  orderdomain.Address `json:"shippingInfo"`
	BillingInfo   orderdomain.Address `json:"billingInfo"`
	Customer      *guestContact       `json:"customer,omitempty"`
}

// createCheckoutSessionHandler serves both signed-in and guest checkouts. A
// bearer token wins; without one the request must carry inline contact info
// and survives the guest quantity gate downstream.
func (a *App) createCheckoutSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, a.Log, err)
		return
	}

	contact, err := a.checkoutContact(r, req.Customer)
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	items := make([]cart.CartItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, cart.CartItem{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
		})
	}

	sess, err := a.Checkout.CreateSession(r.Context(), checkoutdomain.CheckoutRequest{
		Contact:       contact,
		Items:         items,
		Shipping:      req.ShippingInfo,
		Billing:       req.BillingInfo,
		ShippingCents: req.ShippingCents,
		TaxCents:      req.TaxCents,
	})
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"sessionId": sess.ID,
		"url":       sess.URL,
	})
}

func (a *App) checkoutContact(r *http.Request, guest *guestContact) (checkoutdomain.Contact, error) {
	if r.Header.Get("Authorization") != "" {
		identity, err := a.authenticate(r)
		if err != nil {
			return checkoutdomain.Contact{}, err
		}
		return checkoutdomain.Contact{
			UserID: identity.UserID,
			Email:  identity.Email,
			Name:   identity.Name,
		}, nil
	}

	if guest == nil || guest.Email == "" {
		return checkoutdomain.Contact{}, apperr.New(apperr.Invalid, "guest checkout requires customer contact info")
	}
	return checkoutdomain.Contact{
		Email: guest.Email,
		Name:  guest.Name,
		Guest: true,
	}, nil
}

func (a *App) checkoutSessionStatusHandler(w http.ResponseWriter, r *http.Request) {
	sess, err := a.Checkout.SessionStatus(r.Context(), r.URL.Query().Get("session_id"))
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"sessionId":     sess.ID,
		"status":        sess.Status,
		"paymentStatus": sess.PaymentStatus,
	})
}

// checkoutWebhookHandler verifies the provider signature and reconciles the
// payment event. Events the service does not track are acknowledged so the
// provider stops redelivering them.
func (a *App) checkoutWebhookHandler(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, a.Log, apperr.Wrap(apperr.Invalid, "read webhook payload", err))
		return
	}

	// Bad signatures answer 400 so the provider dashboard flags them as
	// client errors rather than retrying forever.
	sess, ok, err := a.Webhook(payload, r.Header.Get("Stripe-Signature"))
	if err != nil {
		writeError(w, a.Log, apperr.Wrap(apperr.Invalid, "webhook verification failed", err))
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "ignored": true})
		return
	}

	if err := a.Checkout.HandlePaymentEvent(r.Context(), sess); err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
