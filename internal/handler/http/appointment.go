package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/handler/http/response"
)

type AppointmentHandler interface {
	GetAppointment(w http.ResponseWriter, r *http.Request)
	ListByCandidate(w http.ResponseWriter, r *http.Request)
	ResolveAppointment(w http.ResponseWriter, r *http.Request)
}

type appointmentHandlerImpl struct {
	appointmentService appointment.Service
}

func NewAppointmentHandler(appointmentService appointment.Service) AppointmentHandler {
	return &appointmentHandlerImpl{
		appointmentService: appointmentService,
	}
}

// GetAppointment implements AppointmentHandler
func (h *appointmentHandlerImpl) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.appointmentService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListByCandidate implements AppointmentHandler
func (h *appointmentHandlerImpl) ListByCandidate(w http.ResponseWriter, r *http.Request) {
	candidateID := r.URL.Query().Get("candidate_id")
	if candidateID == "" {
		response.BadRequest(w, "candidate_id query parameter is required", nil)
		return
	}

	results, err := h.appointmentService.ListByCandidate(r.Context(), candidateID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ResolveAppointment implements AppointmentHandler - operator verdict on a
// lapsed appointment
func (h *appointmentHandlerImpl) ResolveAppointment(w http.ResponseWriter, r *http.Request) {
	var req appointment.ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.AppointmentID = chi.URLParam(r, "id")

	_, claims, _ := jwtauth.FromContext(r.Context())
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		response.Unauthorized(w, "User ID not found in token")
		return
	}
	req.ResolvedBy = userID

	result, err := h.appointmentService.ResolveLapsed(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Appointment resolved", result)
}
