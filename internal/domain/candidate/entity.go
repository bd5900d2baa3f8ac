package candidate

import "time"

// Status is the candidate's position in the wider application pipeline. The
// vocabulary is owned by the applicant-tracking side; the scheduling core
// only distinguishes the subsets below.
type Status string

const (
	StatusNew                Status = "new"
	StatusScreening          Status = "screening"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusInterviewComplete  Status = "interview_complete"
	StatusTrialScheduled     Status = "trial_scheduled"
	StatusTrialComplete      Status = "trial_complete"
	StatusOffer              Status = "offer"
	StatusApproved           Status = "approved"
	StatusHired              Status = "hired"
	StatusRejected           Status = "rejected"
	StatusWithdrawn          Status = "withdrawn"
)

var StatusValues = []string{
	string(StatusNew),
	string(StatusScreening),
	string(StatusInterviewScheduled),
	string(StatusInterviewComplete),
	string(StatusTrialScheduled),
	string(StatusTrialComplete),
	string(StatusOffer),
	string(StatusApproved),
	string(StatusHired),
	string(StatusRejected),
	string(StatusWithdrawn),
}

// autoResolveStatuses are the statuses whose appearance means an outstanding
// appointment's outcome is already decided
var autoResolveStatuses = map[Status]struct{}{
	StatusWithdrawn:      {},
	StatusRejected:       {},
	StatusTrialScheduled: {},
	StatusTrialComplete:  {},
	StatusApproved:       {},
	StatusHired:          {},
}

// IsAutoResolve reports whether the status implies a known appointment outcome
func (s Status) IsAutoResolve() bool {
	_, ok := autoResolveStatuses[s]
	return ok
}

// CancelsScheduled reports whether the status should cancel appointments that
// have not happened yet
func (s Status) CancelsScheduled() bool {
	return s == StatusWithdrawn || s == StatusRejected
}

// Candidate is the scheduling core's view of an applicant. The full record is
// owned externally; only the fields the lifecycle needs are carried here.
type Candidate struct {
	ID           string
	FullName     string
	Email        *string
	Status       Status
	LastNoShowAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
