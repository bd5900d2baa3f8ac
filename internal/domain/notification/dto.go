package notification

import (
	"time"
)

// FactResponse - operator view of an emitted fact
type FactResponse struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	CandidateID   string                 `json:"candidate_id"`
	AppointmentID *string                `json:"appointment_id,omitempty"`
	Data          map[string]interface{} `json:"data,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// NewFactResponse maps a fact to its operator-facing view
func NewFactResponse(f *Fact) FactResponse {
	return FactResponse{
		ID:            f.ID,
		Type:          string(f.Type),
		CandidateID:   f.CandidateID,
		AppointmentID: f.AppointmentID,
		Data:          f.Data,
		CreatedAt:     f.CreatedAt,
	}
}
