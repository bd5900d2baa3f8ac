package bookinglink

import (
	"time"

	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

// IssueRequest - operator request to issue a new booking link
type IssueRequest struct {
	CandidateID     string  `json:"candidate_id"`
	CandidateName   string  `json:"candidate_name"`
	Email           *string `json:"email,omitempty"`
	Type            string  `json:"type"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	JobTitle        *string `json:"job_title,omitempty"`
	BranchID        string  `json:"branch_id"`
	BranchName      *string `json:"branch_name,omitempty"`
	ExpiresAt       *string `json:"expires_at,omitempty"` // RFC3339; default applied when omitted
	MaxUses         *int    `json:"max_uses,omitempty"`
	CreatedBy       string  `json:"-"` // from JWT, not from request body
}

func (r *IssueRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CandidateID) {
		errs = append(errs, validator.ValidationError{
			Field:   "candidate_id",
			Message: "candidate_id is required",
		})
	}

	if validator.IsEmpty(r.CandidateName) {
		errs = append(errs, validator.ValidationError{
			Field:   "candidate_name",
			Message: "candidate_name is required",
		})
	}

	if validator.IsEmpty(r.BranchID) {
		errs = append(errs, validator.ValidationError{
			Field:   "branch_id",
			Message: "branch_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, LinkTypeValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: interview, trial",
		})
	}

	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if r.DurationMinutes != nil && *r.DurationMinutes < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must be positive",
		})
	}

	if r.MaxUses != nil && *r.MaxUses < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "max_uses",
			Message: "max_uses must be at least 1",
		})
	}

	if r.ExpiresAt != nil {
		if _, ok := validator.IsValidDateTime(*r.ExpiresAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "expires_at",
				Message: "expires_at must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IssueResponse carries the one-time plaintext secret and the candidate-facing
// link. Neither is recoverable after this response.
type IssueResponse struct {
	ID        string `json:"id"`
	Secret    string `json:"secret"`
	Link      string `json:"link"`
	ExpiresAt string `json:"expires_at"`
	MaxUses   int    `json:"max_uses"`
}

// LinkData - data returned to the candidate-facing page after validation
type LinkData struct {
	CandidateName   string  `json:"candidate_name"`
	Type            string  `json:"type"`
	DurationMinutes int     `json:"duration_minutes"`
	JobTitle        *string `json:"job_title,omitempty"`
	BranchID        string  `json:"branch_id"`
	BranchName      *string `json:"branch_name,omitempty"`
	ExpiresAt       string  `json:"expires_at"`
	UsesRemaining   int     `json:"uses_remaining"`
}

// ListItemResponse - operator listing of issued links
type ListItemResponse struct {
	ID            string     `json:"id"`
	CandidateID   string     `json:"candidate_id"`
	CandidateName string     `json:"candidate_name"`
	Type          string     `json:"type"`
	BranchID      string     `json:"branch_id"`
	Status        string     `json:"status"`
	ExpiresAt     time.Time  `json:"expires_at"`
	MaxUses       int        `json:"max_uses"`
	UseCount      int        `json:"use_count"`
	UsedAt        *time.Time `json:"used_at,omitempty"`
	AppointmentID *string    `json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CreatedBy     string     `json:"created_by"`
}
