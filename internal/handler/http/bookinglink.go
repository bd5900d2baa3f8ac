package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/handler/http/response"
)

type BookingLinkHandler interface {
	IssueLink(w http.ResponseWriter, r *http.Request)
	ListLinks(w http.ResponseWriter, r *http.Request)
	RevokeLink(w http.ResponseWriter, r *http.Request)
}

type bookingLinkHandlerImpl struct {
	linkService bookinglink.Service
}

func NewBookingLinkHandler(linkService bookinglink.Service) BookingLinkHandler {
	return &bookingLinkHandlerImpl{
		linkService: linkService,
	}
}

// IssueLink implements BookingLinkHandler - issues a link for a candidate.
// The plaintext secret appears in this response and nowhere else.
func (h *bookingLinkHandlerImpl) IssueLink(w http.ResponseWriter, r *http.Request) {
	var req bookinglink.IssueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}
	req.CreatedBy = userID

	result, err := h.linkService.Issue(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Booking link issued", result)
}

// ListLinks implements BookingLinkHandler - lists links for a candidate
func (h *bookingLinkHandlerImpl) ListLinks(w http.ResponseWriter, r *http.Request) {
	candidateID := r.URL.Query().Get("candidate_id")
	if candidateID == "" {
		response.BadRequest(w, "candidate_id query parameter is required", nil)
		return
	}

	results, err := h.linkService.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// RevokeLink implements BookingLinkHandler - revokes a still-active link
func (h *bookingLinkHandlerImpl) RevokeLink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.linkService.Revoke(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Booking link revoked", nil)
}
