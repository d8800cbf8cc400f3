package handlers

import (
	"net/http"

	"github.com/heraldhq/herald/internal/config"
)

type configResponse struct {
	Settings *config.Settings `json:"settings"`
	Mutable  bool             `json:"mutable"`
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	settings, err := s.provider.Settings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, configResponse{
		Settings: settings,
		Mutable:  s.provider.Mutable(),
	})
}

type saveConfigRequest struct {
	Domain    string `json:"mailgunDomain"`
	FromEmail string `json:"fromEmail"`
	FromName  string `json:"fromName"`
}

func (s *Server) handleSaveConfig(w http.ResponseWriter, r *http.Request) {
	var req saveConfigRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.provider.Save(r.Context(), req.Domain, req.FromEmail, req.FromName); err != nil {
		s.respondError(w, r, err)
		return
	}

	settings, err := s.provider.Settings(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, configResponse{
		Settings: settings,
		Mutable:  s.provider.Mutable(),
	})
}
