package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/heraldhq/herald/internal/campaign"
)

type planRequest struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Mode     string `json:"mode"`
	ImageURL string `json:"imageUrl"`
}

type planResponse struct {
	RunID      string               `json:"runId"`
	Mode       campaign.Mode        `json:"mode"`
	Recipients []campaign.Recipient `json:"recipients"`
}

func (s *Server) handlePlanCampaign(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	mode := campaign.ModeNormal
	if req.Mode == string(campaign.ModeTesting) {
		mode = campaign.ModeTesting
	}

	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	tpl := campaign.Template{Subject: req.Subject, Body: req.Body}
	recipients := campaign.Plan(contacts, tpl, mode)
	run := campaign.NewRun(recipients, mode, req.ImageURL)
	id := s.runs.add(run)

	respondJSON(w, http.StatusOK, planResponse{
		RunID:      id,
		Mode:       mode,
		Recipients: run.Recipients(),
	})
}

type sendRequest struct {
	RunID string `json:"runId"`
	Code  string `json:"code"`
	// Excluded lists recipient emails deselected at confirmation.
	Excluded []string `json:"excluded"`
}

// handleSendCampaign streams progress as server-sent events: one
// "progress" event per attempt, then a terminal "summary" or "error"
// event. Errors raised before the first attempt are plain JSON
// responses so clients get a real status code.
func (s *Server) handleSendCampaign(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	run, err := s.runs.get(req.RunID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	// The run survives a failed verification so the operator can retry
	// with the right code; it is dropped once it reaches a terminal
	// state.
	defer func() {
		if run.State() == campaign.StateCompleted {
			s.runs.remove(req.RunID)
		}
	}()

	// The selection is restated in full on every send attempt.
	if err := run.SetAll(true); err != nil {
		s.respondError(w, r, err)
		return
	}
	for _, email := range req.Excluded {
		if err := run.Toggle(email, false); err != nil {
			s.respondError(w, r, err)
			return
		}
	}

	stream := &sseStream{w: w}
	summary, err := s.service.Send(r.Context(), run, req.Code, func(p campaign.Progress) {
		stream.emit("progress", p)
	})
	if err != nil {
		if !stream.started {
			s.respondError(w, r, err)
			return
		}
		stream.emit("error", errorResponse{Error: err.Error()})
		if summary != nil {
			stream.emit("summary", summary)
		}
		return
	}

	stream.emit("summary", summary)
}

// sseStream lazily switches the response to text/event-stream on the
// first event, so pre-send failures can still use normal status codes.
type sseStream struct {
	w       http.ResponseWriter
	started bool
}

func (s *sseStream) emit(event string, v any) {
	if !s.started {
		s.w.Header().Set("Content-Type", "text/event-stream")
		s.w.Header().Set("Cache-Control", "no-cache")
		s.w.Header().Set("Connection", "keep-alive")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data)
	if f, ok := s.w.(http.Flusher); ok {
		f.Flush()
	}
}
