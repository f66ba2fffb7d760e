// Package httpapi exposes the storefront's HTTP JSON surface.
package httpapi

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/forcedowels/storefront/internal/apperr"
	"github.com/forcedowels/storefront/internal/auth"
	checkoutapp "github.com/forcedowels/storefront/internal/checkout/app"
	checkoutdomain "github.com/forcedowels/storefront/internal/checkout/domain"
	distributionapp "github.com/forcedowels/storefront/internal/distribution/app"
	orderapp "github.com/forcedowels/storefront/internal/order/app"
	"github.com/forcedowels/storefront/internal/pricing"
	shippingapp "github.com/forcedowels/storefront/internal/shipping/app"
)

// WebhookVerifier checks a provider webhook payload's signature and extracts
// the checkout session. ok is false for event types the service ignores.
type WebhookVerifier func(payload []byte, signature string) (checkoutdomain.Session, bool, error)

type App struct {
	Orders       *orderapp.Service
	Checkout     *checkoutapp.Service
	Shipping     *shippingapp.Service
	Distribution *distributionapp.Service
	Pricing      *pricing.Table
	Verifier     auth.Verifier
	Webhook      WebhookVerifier
	Log          *slog.Logger
}

// authenticate resolves the bearer token on the request, if any.
func (a *App) authenticate(r *http.Request) (auth.Identity, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return auth.Identity{}, apperr.New(apperr.Unauthorized, "authentication required")
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return auth.Identity{}, apperr.New(apperr.Unauthorized, "malformed authorization header")
	}

	id, err := a.Verifier.Verify(r.Context(), token)
	if err != nil {
		if err == auth.ErrInvalidToken {
			return auth.Identity{}, apperr.New(apperr.Unauthorized, "invalid or expired token")
		}
		return auth.Identity{}, apperr.Wrap(apperr.Upstream, "verify token", err)
	}
	return id, nil
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
