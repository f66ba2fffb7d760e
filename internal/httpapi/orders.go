package httpapi

import (
	"net/http"

	"github.com/forcedowels/storefront/internal/order/domain"
)

type createOrderRequest struct {
	Quantity      int64          `json:"quantity"`
	Tier          string         `json:"tier"`
	TotalCents    int64          `json:"totalCents"`
	PaymentStatus string         `json:"paymentStatus,omitempty"`
	ShippingInfo  domain.Address `json:"shippingInfo"`
	BillingInfo   domain.Address `json:"billingInfo"`
}

func (a *App) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := a.authenticate(r)
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, a.Log, err)
		return
	}

	order, err := a.Orders.CreateOrder(r.Context(), domain.CreateOrderInput{
		UserID:        identity.UserID,
		UserEmail:     identity.Email,
		UserName:      identity.Name,
		Quantity:      req.Quantity,
		Tier:          req.Tier,
		TotalCents:    req.TotalCents,
		PaymentStatus: req.PaymentStatus,
		ShippingInfo:  req.ShippingInfo,
		BillingInfo:   req.BillingInfo,
	})
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"order":   order,
	})
}

func (a *App) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	identity, err := a.authenticate(r)
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	orders, err := a.Orders.ListOrders(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, a.Log, err)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}
