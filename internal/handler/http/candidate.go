package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/handler/http/response"
)

type CandidateHandler interface {
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ListFacts(w http.ResponseWriter, r *http.Request)
}

type candidateHandlerImpl struct {
	candidateService    candidate.Service
	notificationService notification.Service
}

func NewCandidateHandler(candidateService candidate.Service, notificationService notification.Service) CandidateHandler {
	return &candidateHandlerImpl{
		candidateService:    candidateService,
		notificationService: notificationService,
	}
}

// UpdateStatus implements CandidateHandler - status changes feed the
// appointment lifecycle through the event bus
func (h *candidateHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.candidateService.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListFacts implements CandidateHandler - emitted lifecycle facts for a candidate
func (h *candidateHandlerImpl) ListFacts(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	facts, err := h.notificationService.ListByCandidate(r.Context(), id, 50)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]notification.FactResponse, 0, len(facts))
	for _, fact := range facts {
		out = append(out, notification.NewFactResponse(fact))
	}

	response.Success(w, out)
}
