package handlers

import (
	"net/http"
	"strconv"

	"github.com/heraldhq/herald/internal/history"
)

type historyResponse struct {
	Records []history.Record `json:"records"`
	Stats   history.Stats    `json:"stats"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid limit"})
			return
		}
		limit = n
	}

	records, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if records == nil {
		records = []history.Record{}
	}

	respondJSON(w, http.StatusOK, historyResponse{
		Records: records,
		Stats:   history.Tally(records),
	})
}

func (s *Server) handleExportHistory(w http.ResponseWriter, r *http.Request) {
	records, err := s.history.List(r.Context(), 0)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="send-history.csv"`)
	if err := history.ExportCSV(w, records); err != nil {
		s.log.ErrorContext(r.Context(), "history export failed", "error", err)
	}
}
