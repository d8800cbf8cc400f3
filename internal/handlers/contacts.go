package handlers

import (
	"net/http"

	"github.com/heraldhq/herald/internal/contact"
)

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if term := r.URL.Query().Get("q"); term != "" {
		contacts = contact.Filter(contacts, term)
	}
	if contacts == nil {
		contacts = []contact.Contact{}
	}
	respondJSON(w, http.StatusOK, contacts)
}

func (s *Server) handleSyncContacts(w http.ResponseWriter, r *http.Request) {
	var contacts []contact.Contact
	if err := decodeJSON(r, &contacts); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.contacts.Upsert(r.Context(), contacts); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"synced": len(contacts)})
}

// maxImportSize bounds one CSV upload.
const maxImportSize = 10 << 20

func (s *Server) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	contacts, err := contact.ImportCSV(file)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if err := s.contacts.Upsert(r.Context(), contacts); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"imported": len(contacts)})
}

func (s *Server) handleExportContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.contacts.List(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	if err := contact.ExportCSV(w, contacts); err != nil {
		s.log.ErrorContext(r.Context(), "contact export failed", "error", err)
	}
}
