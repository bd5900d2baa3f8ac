package response

import (
	"errors"
	"net/http"

	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Booking link classification errors. The distinct codes let the booking
	// page tell the candidate why their link no longer works.
	switch {
	case errors.Is(err, bookinglink.ErrLinkExpired):
		Gone(w, "LINK_EXPIRED", "This booking link has expired")
	case errors.Is(err, bookinglink.ErrLinkUsed), errors.Is(err, bookinglink.ErrLinkRevoked):
		Gone(w, "LINK_USED", "This booking link has already been used")
	case errors.Is(err, bookinglink.ErrLinkInvalid):
		NotFound(w, "Booking link not found")
	case errors.Is(err, bookinglink.ErrLinkNotFound):
		NotFound(w, "Booking link not found")
	case errors.Is(err, bookinglink.ErrCannotRevokeUsed):
		Conflict(w, "Booking link is no longer active")

	// Booking errors
	case errors.Is(err, appointment.ErrSlotConflict):
		Conflict(w, "The selected slot was just taken, please pick another")
	case errors.Is(err, appointment.ErrSlotUnavailable):
		BadRequest(w, "The selected slot is not available", nil)

	// Appointment lifecycle errors
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		NotFound(w, "Appointment not found")
	case errors.Is(err, appointment.ErrNotLapsed):
		Conflict(w, "Appointment is not awaiting resolution")
	case errors.Is(err, appointment.ErrInvalidResolution):
		BadRequest(w, "Invalid resolution", nil)
	case errors.Is(err, appointment.ErrMissingNewDate):
		BadRequest(w, "new_date is required when rescheduling", nil)

	// Availability errors
	case errors.Is(err, availability.ErrSettingsNotFound):
		NotFound(w, "Availability settings not found")
	case errors.Is(err, availability.ErrInvalidDate):
		BadRequest(w, "Invalid date", nil)
	case errors.Is(err, availability.ErrInvalidRange):
		BadRequest(w, "Invalid date range", nil)

	// Candidate errors
	case errors.Is(err, candidate.ErrCandidateNotFound):
		NotFound(w, "Candidate not found")
	case errors.Is(err, candidate.ErrInvalidStatus):
		BadRequest(w, "Invalid candidate status", nil)

	// Notification errors
	case errors.Is(err, notification.ErrInvalidFactType):
		BadRequest(w, "Invalid fact type", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
