package handler

import (
	"fmt"
	"net/http"
	"strconv"
)

// DownloadBackup handles GET /backup.
// The body is the pretty-printed trip; the file name carries today's date.
func (s *Server) DownloadBackup(w http.ResponseWriter, r *http.Request) {
	b, err := s.backups.Export(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, b.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(b.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Data)
}

// ImportBackup handles POST /backup.
// The raw body is the snapshot. It replaces the whole trip only if its
// top-level value is a JSON array; otherwise the trip is left untouched and
// the response is 422 invalid_backup. A request overtaken by a newer import
// gets 409 conflict.
func (s *Server) ImportBackup(w http.ResponseWriter, r *http.Request) {
	n, err := s.backups.Import(r.Context(), r.Body)
	if err != nil {
		s.writeStoreError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, ImportResponse{Segments: n})
}
