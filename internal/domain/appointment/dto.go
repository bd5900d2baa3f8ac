package appointment

import (
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

// ResolveRequest - operator request to resolve a lapsed appointment
type ResolveRequest struct {
	AppointmentID string  `json:"-"` // from URL param
	Resolution    string  `json:"resolution"`
	Notes         *string `json:"notes,omitempty"`
	NewDate       *string `json:"new_date,omitempty"` // RFC3339, required for rescheduled
	ResolvedBy    string  `json:"-"`                  // from JWT, not from request body
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.AppointmentID) {
		errs = append(errs, validator.ValidationError{
			Field:   "appointment_id",
			Message: "appointment_id is required",
		})
	}

	if !validator.IsInSlice(r.Resolution, ResolutionValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "resolution",
			Message: "resolution must be one of: rescheduled, completed, cancelled, no_show",
		})
	}

	if r.Resolution == string(ResolutionRescheduled) {
		if r.NewDate == nil || validator.IsEmpty(*r.NewDate) {
			errs = append(errs, validator.ValidationError{
				Field:   "new_date",
				Message: "new_date is required when resolution is rescheduled",
			})
		} else if _, ok := validator.IsValidDateTime(*r.NewDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "new_date",
				Message: "new_date must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ResolveResponse - result of a manual resolution
type ResolveResponse struct {
	AppointmentID string `json:"appointment_id"`
	NewStatus     string `json:"new_status"`
}

// DetailResponse - operator view of a single appointment
type DetailResponse struct {
	ID                   string     `json:"id"`
	CandidateID          string     `json:"candidate_id"`
	CandidateName        string     `json:"candidate_name"`
	BranchID             string     `json:"branch_id"`
	Type                 string     `json:"type"`
	ScheduledAt          time.Time  `json:"scheduled_at"`
	DurationMinutes      int        `json:"duration_minutes"`
	Status               string     `json:"status"`
	LapsedAt             *time.Time `json:"lapsed_at,omitempty"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	ResolvedBy           *string    `json:"resolved_by,omitempty"`
	ResolvedReason       *string    `json:"resolved_reason,omitempty"`
	CancelledAt          *time.Time `json:"cancelled_at,omitempty"`
	CancelledReason      *string    `json:"cancelled_reason,omitempty"`
	RescheduledFrom      *time.Time `json:"rescheduled_from,omitempty"`
	FeedbackReminderSent bool       `json:"feedback_reminder_sent"`
	CreatedAt            time.Time  `json:"created_at"`
}

// NewDetailResponse maps an entity to its operator-facing view
func NewDetailResponse(a Appointment) DetailResponse {
	return DetailResponse{
		ID:                   a.ID,
		CandidateID:          a.CandidateID,
		CandidateName:        a.CandidateName,
		BranchID:             a.BranchID,
		Type:                 string(a.Type),
		ScheduledAt:          a.ScheduledAt,
		DurationMinutes:      a.DurationMinutes,
		Status:               string(a.Status),
		LapsedAt:             a.LapsedAt,
		ResolvedAt:           a.ResolvedAt,
		ResolvedBy:           a.ResolvedBy,
		ResolvedReason:       a.ResolvedReason,
		CancelledAt:          a.CancelledAt,
		CancelledReason:      a.CancelledReason,
		RescheduledFrom:      a.RescheduledFrom,
		FeedbackReminderSent: a.FeedbackReminderSent,
		CreatedAt:            a.CreatedAt,
	}
}
