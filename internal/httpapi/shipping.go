package httpapi

import (
	"net/http"

	cart "github.com/forcedowels/storefront/internal/cart/domain"
	"github.com/forcedowels/storefront/internal/shipping/domain"
)

type shippingRatesRequest struct {
	Destination domain.Destination `json:"destination"`
	Items       []cartItemRequest  `json:"items"`
}

func (a *App) shippingRatesHandler(w http.ResponseWriter, r *http.Request) {
	var req shippingRatesRequest
	if err := decodeJSON(r, &req); err != nil {
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

	quote, err := a.Shipping.GetRates(r.Context(), domain.RateRequest{
		Destination: req.Destination,
		Items:       items,
	})
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"quote":   quote,
	})
}
