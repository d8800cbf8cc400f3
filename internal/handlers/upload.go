package handlers

import (
	"net/http"
)

// maxUploadMemory bounds the in-memory part of multipart parsing.
const maxUploadMemory = 10 << 20

// handleUploadImage stores a campaign image and returns its public URL.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if s.uploads == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "image storage is not configured"})
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing image field"})
		return
	}
	defer file.Close()

	info, err := s.uploads.Put(r.Context(), file, header.Size)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// handleDeleteImage removes a previously uploaded image by its storage key.
func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	if s.uploads == nil {
		respondJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "image storage is not configured"})
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "missing key parameter"})
		return
	}

	if err := s.uploads.Delete(r.Context(), key); err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": key})
}
