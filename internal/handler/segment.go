package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agu27/EuroPlan/internal/service"
)

// ListSegments handles GET /segments.
func (s *Server) ListSegments(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, SegmentListResponse{Data: s.itinerary.Segments()})
}

// CreateSegment handles POST /segments.
func (s *Server) CreateSegment(w http.ResponseWriter, r *http.Request) {
	var body SegmentRequest
	if err := decodeBody(r, &body); err != nil {
		invalidBody(w, err)
		return
	}

	seg, err := s.itinerary.AddSegment(r.Context(), service.SegmentInput{
		City:          body.City,
		Country:       body.Country,
		ArrivalDate:   body.ArrivalDate,
		DepartureDate: body.DepartureDate,
	})
	if err != nil {
		s.writeStoreError(w, r, err, "segment not found")
		return
	}
	writeJSON(w, http.StatusCreated, seg)
}

// DeleteSegment handles DELETE /segments/{segmentId}.
// Nothing is deleted yet: the response is an intent to confirm.
func (s *Server) DeleteSegment(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathParam(r, "segmentId")
	if err != nil {
		badRequest(w, err)
		return
	}

	in, err := s.itinerary.RequestDeleteSegment(r.Context(), segmentID)
	if err != nil {
		s.writeStoreError(w, r, err, "segment not found")
		return
	}
	writeJSON(w, http.StatusAccepted, in)
}

// CreateItem handles POST /segments/{segmentId}/items.
func (s *Server) CreateItem(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathParam(r, "segmentId")
	if err != nil {
		badRequest(w, err)
		return
	}
	var body ItemRequest
	if err := decodeBody(r, &body); err != nil {
		invalidBody(w, err)
		return
	}

	item, err := s.itinerary.AddItem(r.Context(), segmentID, body.toInput())
	if err != nil {
		s.writeStoreError(w, r, err, "segment not found")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// UpdateItem handles PUT /segments/{segmentId}/items/{itemId}.
func (s *Server) UpdateItem(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathParam(r, "segmentId")
	if err != nil {
		badRequest(w, err)
		return
	}
	itemID, err := pathParam(r, "itemId")
	if err != nil {
		badRequest(w, err)
		return
	}
	var body ItemRequest
	if err := decodeBody(r, &body); err != nil {
		invalidBody(w, err)
		return
	}

	item, err := s.itinerary.UpdateItem(r.Context(), segmentID, itemID, body.toInput())
	if err != nil {
		s.writeStoreError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// DeleteItem handles DELETE /segments/{segmentId}/items/{itemId}.
// Like DeleteSegment it only registers an intent.
func (s *Server) DeleteItem(w http.ResponseWriter, r *http.Request) {
	segmentID, err := pathParam(r, "segmentId")
	if err != nil {
		badRequest(w, err)
		return
	}
	itemID, err := pathParam(r, "itemId")
	if err != nil {
		badRequest(w, err)
		return
	}

	in, err := s.itinerary.RequestDeleteItem(r.Context(), segmentID, itemID)
	if err != nil {
		s.writeStoreError(w, r, err, "item not found")
		return
	}
	writeJSON(w, http.StatusAccepted, in)
}

// decodeBody decodes a JSON request body into dst.
// Unknown fields are ignored so older clients keep working.
func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil || r.Body == http.NoBody {
		return errors.New("request body is required")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}
