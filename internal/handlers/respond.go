package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heraldhq/herald/internal/campaign"
	"github.com/heraldhq/herald/internal/config"
	"github.com/heraldhq/herald/internal/contact"
	"github.com/heraldhq/herald/pkg/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusForError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, campaign.ErrVerificationFailed):
		return http.StatusForbidden
	case errors.Is(err, campaign.ErrNoRecipients),
		errors.Is(err, config.ErrMissingFields),
		errors.Is(err, contact.ErrNoEmailColumn),
		errors.Is(err, storage.ErrEmptyFile),
		errors.Is(err, storage.ErrInvalidMIME):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, config.ErrImmutable):
		return http.StatusConflict
	case errors.Is(err, campaign.ErrNotConfigured),
		errors.Is(err, storage.ErrInvalidConfig):
		return http.StatusServiceUnavailable
	case errors.Is(err, errRunNotFound):
		return http.StatusNotFound
	case errors.Is(err, campaign.ErrRunFrozen):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		s.log.ErrorContext(r.Context(), "request failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		respondJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}
	respondJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
