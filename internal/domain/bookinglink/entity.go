package bookinglink

import "time"

// Status represents the status of a booking link
type Status string

const (
	StatusActive  Status = "active"
	StatusUsed    Status = "used"
	StatusExpired Status = "expired"
	StatusRevoked Status = "revoked"
)

// LinkType distinguishes what kind of appointment the link books
type LinkType string

const (
	TypeInterview LinkType = "interview"
	TypeTrial     LinkType = "trial"
)

var LinkTypeValues = []string{
	string(TypeInterview),
	string(TypeTrial),
}

// BookingLink represents a single invitation to book an appointment. Only the
// digest of the secret is stored; the plaintext exists once, in the issue
// response.
type BookingLink struct {
	ID              string
	TokenHash       string
	CandidateID     string
	CandidateName   string
	Email           *string
	Type            LinkType
	DurationMinutes *int // explicit override; nil falls back to the type default
	JobTitle        *string
	BranchID        string
	BranchName      *string
	Status          Status
	ExpiresAt       time.Time
	MaxUses         int
	UseCount        int
	UsedAt          *time.Time
	AppointmentID   *string
	CreatedAt       time.Time
	CreatedBy       string
	UpdatedAt       time.Time
}

// IsExpired checks if the link has expired (query-time check, independent of
// the persisted status)
func (l *BookingLink) IsExpired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// IsExhausted checks if every allowed use of the link has been consumed
func (l *BookingLink) IsExhausted() bool {
	return l.UseCount >= l.MaxUses || l.Status == StatusUsed
}

// Usable classifies whether the link can still book an appointment at the
// given instant. Expiry takes precedence over exhaustion.
func (l *BookingLink) Usable(now time.Time) error {
	if l.IsExpired(now) {
		return ErrLinkExpired
	}
	if l.Status == StatusRevoked {
		return ErrLinkRevoked
	}
	if l.IsExhausted() {
		return ErrLinkUsed
	}
	return nil
}
