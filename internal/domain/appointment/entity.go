package appointment

import "time"

// Status represents the lifecycle status of an appointment
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLapsed    Status = "lapsed"
	StatusResolved  Status = "resolved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Type distinguishes interviews from working trials
type Type string

const (
	TypeInterview Type = "interview"
	TypeTrial     Type = "trial"
)

// transitions holds the allowed lifecycle edges. Anything not listed here is
// an illegal jump.
var transitions = map[Status][]Status{
	StatusScheduled: {StatusLapsed, StatusResolved, StatusCancelled},
	StatusLapsed:    {StatusResolved, StatusCompleted, StatusCancelled, StatusNoShow, StatusScheduled},
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status is retained as final history
func (s Status) IsTerminal() bool {
	switch s {
	case StatusResolved, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Resolution is an operator's verdict on a lapsed appointment
type Resolution string

const (
	ResolutionRescheduled Resolution = "rescheduled"
	ResolutionCompleted   Resolution = "completed"
	ResolutionCancelled   Resolution = "cancelled"
	ResolutionNoShow      Resolution = "no_show"
)

var ResolutionValues = []string{
	string(ResolutionRescheduled),
	string(ResolutionCompleted),
	string(ResolutionCancelled),
	string(ResolutionNoShow),
}

// Appointment represents a scheduled interaction between the organization and
// a candidate. Appointments are created only at reservation time and are never
// deleted; terminal states are retained as history.
type Appointment struct {
	ID                   string
	CandidateID          string
	CandidateName        string
	BranchID             string
	Type                 Type
	ScheduledAt          time.Time
	DurationMinutes      int
	Status               Status
	LapsedAt             *time.Time
	ResolvedAt           *time.Time
	ResolvedBy           *string
	ResolvedReason       *string
	CancelledAt          *time.Time
	CancelledReason      *string
	RescheduledFrom      *time.Time
	FeedbackReminderSent bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// EndsAt returns the exclusive end of the occupied interval
func (a *Appointment) EndsAt() time.Time {
	return a.ScheduledAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Overlaps reports whether the appointment's interval overlaps
// [start, end). Touching boundaries do not count as overlap.
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.ScheduledAt.Before(end) && a.EndsAt().After(start)
}

// Blocks reports whether the appointment still occupies its slot for
// availability purposes
func (a *Appointment) Blocks() bool {
	return a.Status != StatusCancelled
}
