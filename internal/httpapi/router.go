package httpapi

import "net/http"

// NewRouter registers the storefront routes and wraps them in request-id and
// access-log middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /orders", app.createOrderHandler)
	mux.HandleFunc("GET /orders", app.listOrdersHandler)

	mux.HandleFunc("POST /checkout/session", app.createCheckoutSessionHandler)
	mux.HandleFunc("GET /checkout/session/status", app.checkoutSessionStatusHandler)
	mux.HandleFunc("POST /checkout/webhook", app.checkoutWebhookHandler)

	mux.HandleFunc("POST /shipping/rates", app.shippingRatesHandler)

	mux.HandleFunc("POST /distributor-application", app.distributorApplicationHandler)
	mux.HandleFunc("GET /distribution/accept/{uniqueId}", app.acceptDistributionHandler)
	mux.HandleFunc("GET /distribution/decline/{uniqueId}", app.declineDistributionHandler)

	mux.HandleFunc("GET /pricing/tiers", app.pricingTiersHandler)
	mux.HandleFunc("GET /healthz", app.healthHandler)

	return WithRequestID(WithLogging(app.Log, mux))
}
