package candidate

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	domain "github.com/flowhire/scheduling-backend-go/internal/domain/candidate"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/events"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/validator"
)

type service struct {
	repo domain.Repository
	bus  *events.Bus
	now  func() time.Time
}

// NewService creates the candidate service. Status changes are announced on
// the event bus so the appointment lifecycle can react without a direct
// dependency in either direction.
func NewService(repo domain.Repository, bus *events.Bus, now func() time.Time) domain.Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, bus: bus, now: now}
}

func (s *service) GetByID(ctx context.Context, id string) (domain.Candidate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateStatus(ctx context.Context, id, status string) (domain.StatusUpdateResponse, error) {
	if !validator.IsInSlice(status, domain.StatusValues) {
		return domain.StatusUpdateResponse{}, fmt.Errorf("%w: %s", domain.ErrInvalidStatus, status)
	}

	oldStatus, err := s.repo.UpdateStatus(ctx, id, domain.Status(status))
	if err != nil {
		return domain.StatusUpdateResponse{}, err
	}

	if string(oldStatus) != status && s.bus != nil {
		s.bus.Publish(events.CandidateStatusChanged{
			CandidateID: id,
			OldStatus:   string(oldStatus),
			NewStatus:   status,
			OccurredAt:  s.now(),
		})
		slog.Info("Candidate status changed",
			"candidate_id", id,
			"old_status", string(oldStatus),
			"new_status", status)
	}

	return domain.StatusUpdateResponse{
		CandidateID: id,
		OldStatus:   string(oldStatus),
		NewStatus:   status,
	}, nil
}
