package httpapi

import "net/http"

type tierResponse struct {
	Range     string  `json:"range"`
	Min       int64   `json:"min"`
	Max       int64   `json:"max"`
	UnitPrice float64 `json:"pricePerUnit"`
}

func (a *App) pricingTiersHandler(w http.ResponseWriter, _ *http.Request) {
	tiers := a.Pricing.Tiers()
	out := make([]tierResponse, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, tierResponse{
			Range:     t.Range,
			Min:       t.Min,
			Max:       t.Max,
			UnitPrice: t.UnitPrice(),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tiers":   out,
	})
}
