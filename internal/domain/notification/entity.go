package notification

import (
	"time"
)

// FactType represents the kind of lifecycle fact being emitted
type FactType string

const (
	TypeBookingLinkIssued      FactType = "booking_link_issued"
	TypeAppointmentCreated     FactType = "appointment_created"
	TypeAppointmentLapsed      FactType = "appointment_lapsed"
	TypeAppointmentResolved    FactType = "appointment_resolved"
	TypeAppointmentCancelled   FactType = "appointment_cancelled"
	TypeAppointmentRescheduled FactType = "appointment_rescheduled"
	TypeFeedbackReminder       FactType = "feedback_reminder"
)

// AllFactTypes returns all available fact types
func AllFactTypes() []FactType {
	return []FactType{
		TypeBookingLinkIssued,
		TypeAppointmentCreated,
		TypeAppointmentLapsed,
		TypeAppointmentResolved,
		TypeAppointmentCancelled,
		TypeAppointmentRescheduled,
		TypeFeedbackReminder,
	}
}

// Fact is a lifecycle fact handed to the delivery side. The scheduling core
// decides only that something happened, never what anybody is told about it.
type Fact struct {
	ID            string
	Type          FactType
	CandidateID   string
	AppointmentID *string
	Data          map[string]interface{}
	CreatedAt     time.Time
}
