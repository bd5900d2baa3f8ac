package bookinglink

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowhire/scheduling-backend-go/internal/config"
	domain "github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/token"
)

type service struct {
	repo     domain.Repository
	notifier notification.Service
	cfg      config.BookingConfig
	baseURL  string
	now      func() time.Time
}

// NewService creates a new booking link service. The clock is injectable so
// tests can pin "now"; pass nil for the real clock.
func NewService(
	repo domain.Repository,
	notifier notification.Service,
	cfg config.BookingConfig,
	baseURL string,
	now func() time.Time,
) domain.Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		baseURL:  strings.TrimRight(baseURL, "/"),
		now:      now,
	}
}

func (s *service) Issue(ctx context.Context, req domain.IssueRequest) (domain.IssueResponse, error) {
	if err := req.Validate(); err != nil {
		return domain.IssueResponse{}, err
	}

	secret, digest, err := token.Generate()
	if err != nil {
		return domain.IssueResponse{}, err
	}

	now := s.now()

	expiresAt := now.Add(s.cfg.LinkExpiry)
	if req.ExpiresAt != nil {
		parsed, parseErr := time.Parse(time.RFC3339, *req.ExpiresAt)
		if parseErr != nil {
			return domain.IssueResponse{}, fmt.Errorf("invalid expires_at: %w", parseErr)
		}
		expiresAt = parsed
	}

	maxUses := s.cfg.DefaultMaxUses
	if req.MaxUses != nil {
		maxUses = *req.MaxUses
	}

	id, err := uuid.NewV7()
	if err != nil {
		return domain.IssueResponse{}, fmt.Errorf("failed to generate link id: %w", err)
	}

	link := domain.BookingLink{
		ID:              id.String(),
		TokenHash:       digest,
		CandidateID:     req.CandidateID,
		CandidateName:   req.CandidateName,
		Email:           req.Email,
		Type:            domain.LinkType(req.Type),
		DurationMinutes: req.DurationMinutes,
		JobTitle:        req.JobTitle,
		BranchID:        req.BranchID,
		BranchName:      req.BranchName,
		Status:          domain.StatusActive,
		ExpiresAt:       expiresAt,
		MaxUses:         maxUses,
		UseCount:        0,
		CreatedAt:       now,
		CreatedBy:       req.CreatedBy,
	}

	created, err := s.repo.Create(ctx, link)
	if err != nil {
		return domain.IssueResponse{}, fmt.Errorf("failed to create booking link: %w", err)
	}

	if s.notifier != nil {
		_ = s.notifier.Emit(ctx, notification.Fact{
			Type:        notification.TypeBookingLinkIssued,
			CandidateID: created.CandidateID,
			Data: map[string]interface{}{
				"link_id":    created.ID,
				"type":       string(created.Type),
				"branch_id":  created.BranchID,
				"expires_at": created.ExpiresAt.Format(time.RFC3339),
			},
		})
	}

	slog.Info("Booking link issued",
		"link_id", created.ID,
		"candidate_id", created.CandidateID,
		"type", created.Type,
		"expires_at", created.ExpiresAt)

	return domain.IssueResponse{
		ID:        created.ID,
		Secret:    secret,
		Link:      fmt.Sprintf("%s/booking/%s", s.baseURL, secret),
		ExpiresAt: created.ExpiresAt.Format(time.RFC3339),
		MaxUses:   created.MaxUses,
	}, nil
}

func (s *service) Validate(ctx context.Context, secret string) (domain.LinkData, error) {
	link, err := s.Lookup(ctx, secret)
	if err != nil {
		return domain.LinkData{}, err
	}

	if err := link.Usable(s.now()); err != nil {
		return domain.LinkData{}, err
	}

	return domain.LinkData{
		CandidateName:   link.CandidateName,
		Type:            string(link.Type),
		DurationMinutes: s.EffectiveDuration(link),
		JobTitle:        link.JobTitle,
		BranchID:        link.BranchID,
		BranchName:      link.BranchName,
		ExpiresAt:       link.ExpiresAt.Format(time.RFC3339),
		UsesRemaining:   link.MaxUses - link.UseCount,
	}, nil
}

func (s *service) Lookup(ctx context.Context, secret string) (domain.BookingLink, error) {
	link, err := s.repo.GetByTokenHash(ctx, token.Hash(secret))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			// An unknown digest is indistinguishable from a forged secret
			return domain.BookingLink{}, domain.ErrLinkInvalid
		}
		return domain.BookingLink{}, fmt.Errorf("failed to look up booking link: %w", err)
	}
	return link, nil
}

func (s *service) ListByCandidate(ctx context.Context, candidateID string) ([]domain.ListItemResponse, error) {
	links, err := s.repo.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to list booking links: %w", err)
	}

	now := s.now()
	items := make([]domain.ListItemResponse, 0, len(links))
	for _, link := range links {
		status := link.Status
		// expiry is derived at read time, it is not always persisted
		if status == domain.StatusActive && link.IsExpired(now) {
			status = domain.StatusExpired
		}
		items = append(items, domain.ListItemResponse{
			ID:            link.ID,
			CandidateID:   link.CandidateID,
			CandidateName: link.CandidateName,
			Type:          string(link.Type),
			BranchID:      link.BranchID,
			Status:        string(status),
			ExpiresAt:     link.ExpiresAt,
			MaxUses:       link.MaxUses,
			UseCount:      link.UseCount,
			UsedAt:        link.UsedAt,
			AppointmentID: link.AppointmentID,
			CreatedAt:     link.CreatedAt,
			CreatedBy:     link.CreatedBy,
		})
	}
	return items, nil
}

func (s *service) Revoke(ctx context.Context, id string) error {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if link.Status != domain.StatusActive {
		return domain.ErrCannotRevokeUsed
	}

	if err := s.repo.MarkRevoked(ctx, id); err != nil {
		return fmt.Errorf("failed to revoke booking link: %w", err)
	}

	slog.Info("Booking link revoked", "link_id", id, "candidate_id", link.CandidateID)
	return nil
}

func (s *service) EffectiveDuration(link domain.BookingLink) int {
	if link.DurationMinutes != nil {
		return *link.DurationMinutes
	}
	if link.Type == domain.TypeTrial {
		return s.cfg.TrialDurationMinutes
	}
	return s.cfg.InterviewDurationMinutes
}
