package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/forcedowels/storefront/internal/apperr"
)

type jsonError struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto status codes. Anything outside the
// taxonomy is a 500 with a generic message so internals never leak.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		log.Error("unhandled error", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, jsonError{Error: "internal error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Kind {
	case apperr.Invalid:
		status = http.StatusBadRequest
	case apperr.Unauthorized:
		status = http.StatusUnauthorized
	case apperr.Forbidden:
		status = http.StatusForbidden
	case apperr.NotFound:
		status = http.StatusNotFound
	case apperr.Conflict:
		status = http.StatusConflict
	case apperr.Upstream, apperr.Internal:
		log.Error("request failed", slog.Any("err", err))
	}

	writeJSON(w, status, jsonError{Error: appErr.Msg})
}

// decodeJSON enforces the content type and rejects unknown fields before any
// domain logic runs.
func decodeJSON(r *http.Request, dst any) error {
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		return apperr.New(apperr.Invalid, "expected application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperr.Wrap(apperr.Invalid, "invalid JSON body", err)
	}
	return nil
}
