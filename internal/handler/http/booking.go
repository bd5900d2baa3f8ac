package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/handler/http/response"
	availabilityengine "github.com/flowhire/scheduling-backend-go/internal/service/availability"
	"github.com/flowhire/scheduling-backend-go/internal/service/booking"
)

type BookingHandler interface {
	// Public endpoints - reached through a booking link, no authentication
	ValidateLink(w http.ResponseWriter, r *http.Request)
	GetSlots(w http.ResponseWriter, r *http.Request)
	GetAvailability(w http.ResponseWriter, r *http.Request)
	Reserve(w http.ResponseWriter, r *http.Request)
}

type bookingHandlerImpl struct {
	linkService         bookinglink.Service
	availabilityService availability.Service
	bookingService      booking.Service
}

func NewBookingHandler(
	linkService bookinglink.Service,
	availabilityService availability.Service,
	bookingService booking.Service,
) BookingHandler {
	return &bookingHandlerImpl{
		linkService:         linkService,
		availabilityService: availabilityService,
		bookingService:      bookingService,
	}
}

// ValidateLink implements BookingHandler - classifies the presented secret
// and returns the booking context on success. Side-effect free; refreshing
// the page never consumes a use.
func (h *bookingHandlerImpl) ValidateLink(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "token")
	if secret == "" {
		response.BadRequest(w, "Token is required", nil)
		return
	}

	result, err := h.linkService.Validate(r.Context(), secret)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetSlots implements BookingHandler - slots for the link's branch on one date
func (h *bookingHandlerImpl) GetSlots(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "token")
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	link, err := h.linkService.Lookup(r.Context(), secret)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	slots, err := h.availabilityService.TimeSlots(r.Context(), link.BranchID, date, h.linkService.EffectiveDuration(link))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if r.URL.Query().Get("grouped") == "true" {
		response.Success(w, availabilityengine.GroupSlots(slots))
		return
	}
	response.Success(w, slots)
}

// GetAvailability implements BookingHandler - per-day summaries over a range,
// for the booking page's calendar
func (h *bookingHandlerImpl) GetAvailability(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "token")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		response.BadRequest(w, "from and to query parameters are required", nil)
		return
	}

	link, err := h.linkService.Lookup(r.Context(), secret)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	days, err := h.availabilityService.DaySummaries(r.Context(), link.BranchID, from, to, h.linkService.EffectiveDuration(link))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, days)
}

// Reserve implements BookingHandler - books the selected slot
func (h *bookingHandlerImpl) Reserve(w http.ResponseWriter, r *http.Request) {
	var req booking.ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.Secret = chi.URLParam(r, "token")

	appt, err := h.bookingService.Reserve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Appointment booked", appt)
}
