package handler

import "net/http"

// ConfirmIntent handles POST /intents/{intentId}/confirm.
func (s *Server) ConfirmIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathParam(r, "intentId")
	if err != nil {
		badRequest(w, err)
		return
	}
	if _, err := s.intents.Confirm(r.Context(), intentID); err != nil {
		s.writeStoreError(w, r, err, "intent not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeclineIntent handles DELETE /intents/{intentId}.
func (s *Server) DeclineIntent(w http.ResponseWriter, r *http.Request) {
	intentID, err := pathParam(r, "intentId")
	if err != nil {
		badRequest(w, err)
		return
	}
	if err := s.intents.Decline(r.Context(), intentID); err != nil {
		s.writeStoreError(w, r, err, "intent not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// RequestReset handles POST /reset. The trip is erased only once the
// returned intent is confirmed.
func (s *Server) RequestReset(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusAccepted, s.intents.RequestReset(r.Context()))
}
