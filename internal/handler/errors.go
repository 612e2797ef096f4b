package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/agu27/EuroPlan/internal/domain"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// badRequest answers a request rejected before reaching the store
// (unparseable path or query parameter).
func badRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadRequest, "bad_request", err.Error())
}

// invalidBody answers a missing or malformed JSON body.
func invalidBody(w http.ResponseWriter, err error) {
	writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
}

// writeStoreError maps an error returned by the trip store to a response.
// notFound is the message used for domain.ErrNotFound, because the handler is
// the layer that knows what was being looked up.
func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, domain.ErrIntentNotFound):
		writeError(w, http.StatusNotFound, "not_found", "intent not found or expired")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", notFound)
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrInvalidBackup):
		writeError(w, http.StatusUnprocessableEntity, "invalid_backup", unwrapMessage(err, domain.ErrInvalidBackup))
	case errors.Is(err, domain.ErrImportSuperseded):
		writeError(w, http.StatusConflict, "conflict", domain.ErrImportSuperseded.Error())
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", err.Error())
	default:
		s.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

// unwrapMessage extracts the human-readable part after a sentinel's text.
// e.g. "service.TripStore.AddItem: validation error: title is required" → "title is required"
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.LastIndex(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
