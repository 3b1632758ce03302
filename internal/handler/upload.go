package handler

import (
	"errors"
	"net/http"

	"github.com/pkordes/trip-planner/internal/blob"
)

// maxUploadMemory is how much of a multipart form is held in memory before
// spilling to temporary files.
const maxUploadMemory = 8 << 20

// UploadResponse is the body of POST /uploads.
type UploadResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// CreateUpload handles POST /uploads. The multipart form carries the file
// under "file" and an optional "folder" (default "uploads").
func (s *Server) CreateUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "upload too large")
			return
		}
		requestError(w, "expected a multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		requestError(w, "file is required")
		return
	}
	defer file.Close()

	folder := r.FormValue("folder")
	if folder == "" {
		folder = blob.DefaultFolder
	}

	up, err := s.Uploads.Upload(r.Context(), file, header.Filename, folder)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	s.Log.InfoContext(r.Context(), "file uploaded", "path", up.Path, "size", header.Size)
	writeJSON(w, http.StatusCreated, UploadResponse{URL: up.URL, Path: up.Path})
}
