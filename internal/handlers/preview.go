package handlers

import (
	"net/http"

	"github.com/heraldhq/herald/pkg/markup"
	"github.com/heraldhq/herald/pkg/sanitizer"
	"github.com/heraldhq/herald/pkg/template"
)

type previewRequest struct {
	Body   string            `json:"body"`
	Values map[string]string `json:"values"`
}

type previewResponse struct {
	HTML      string   `json:"html"`
	Variables []string `json:"variables"`
}

// handlePreview renders the operator-facing preview: placeholders
// substituted, preview formatting applied, output sanitized before it
// is echoed back to a browser.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	body := template.Substitute(req.Body, req.Values)
	html := sanitizer.SanitizePreview(markup.Preview(body))

	respondJSON(w, http.StatusOK, previewResponse{
		HTML:      html,
		Variables: template.Variables(req.Body),
	})
}
