package httpapi

import (
	"net/http"

	"github.com/forcedowels/storefront/internal/distribution/domain"
)

type distributorApplicationRequest struct {
	BusinessName string `json:"businessName"`
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	Territory    string `json:"territory"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
}

func (a *App) distributorApplicationHandler(w http.ResponseWriter, r *http.Request) {
	var req distributorApplicationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, a.Log, err)
		return
	}

	created, warnings, err := a.Distribution.Submit(r.Context(), domain.SubmitInput{
		BusinessName: req.BusinessName,
		FullName:     req.FullName,
		EmailAddress: req.EmailAddress,
		Territory:    req.Territory,
		City:         req.City,
		State:        req.State,
	})
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"request":  created,
		"warnings": warningsOrEmpty(warnings),
	})
}

// The accept/decline links in the notification email land here as plain GETs,
// so replays are routine and answered with 409.
func (a *App) acceptDistributionHandler(w http.ResponseWriter, r *http.Request) {
	req, warnings, err := a.Distribution.Accept(r.Context(), r.PathValue("uniqueId"))
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"status":   req.Status,
		"warnings": warningsOrEmpty(warnings),
	})
}

func (a *App) declineDistributionHandler(w http.ResponseWriter, r *http.Request) {
	req, warnings, err := a.Distribution.Decline(r.Context(), r.PathValue("uniqueId"))
	if err != nil {
		writeError(w, a.Log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"status":   req.Status,
		"warnings": warningsOrEmpty(warnings),
	})
}

func warningsOrEmpty(w []string) []string {
	if w == nil {
		return []string{}
	}
	return w
}
