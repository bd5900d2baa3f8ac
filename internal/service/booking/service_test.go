package booking

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowhire/scheduling-backend-go/internal/config"
	"github.com/flowhire/scheduling-backend-go/internal/domain/appointment"
	"github.com/flowhire/scheduling-backend-go/internal/domain/availability"
	"github.com/flowhire/scheduling-backend-go/internal/domain/bookinglink"
	"github.com/flowhire/scheduling-backend-go/internal/domain/notification"
	"github.com/flowhire/scheduling-backend-go/internal/pkg/token"
	bookinglinksvc "github.com/flowhire/scheduling-backend-go/internal/service/bookinglink"
)

// ---- fakes ----

type fakeLinkRepo struct {
	links map[string]bookinglink.BookingLink
}

func (r *fakeLinkRepo) Create(ctx context.Context, link bookinglink.BookingLink) (bookinglink.BookingLink, error) {
	r.links[link.ID] = link
	return link, nil
}

func (r *fakeLinkRepo) GetByTokenHash(ctx context.Context, tokenHash string) (bookinglink.BookingLink, error) {
	for _, link := range r.links {
		if link.TokenHash == tokenHash {
			return link, nil
		}
	}
	return bookinglink.BookingLink{}, bookinglink.ErrLinkNotFound
}

func (r *fakeLinkRepo) GetByID(ctx context.Context, id string) (bookinglink.BookingLink, error) {
	link, ok := r.links[id]
	if !ok {
		return bookinglink.BookingLink{}, bookinglink.ErrLinkNotFound
	}
	return link, nil
}

func (r *fakeLinkRepo) ListByCandidate(ctx context.Context, candidateID string) ([]bookinglink.BookingLink, error) {
	var out []bookinglink.BookingLink
	for _, link := range r.links {
		if link.CandidateID == candidateID {
			out = append(out, link)
		}
	}
	return out, nil
}

func (r *fakeLinkRepo) ConsumeUse(ctx context.Context, id, appointmentID string, usedAt time.Time) (bool, error) {
	link, ok := r.links[id]
	if !ok || link.Status != bookinglink.StatusActive || link.UseCount >= link.MaxUses {
		return false, nil
	}
	link.UseCount++
	link.AppointmentID = &appointmentID
	link.UsedAt = &usedAt
	if link.UseCount >= link.MaxUses {
		link.Status = bookinglink.StatusUsed
	}
	r.links[id] = link
	return true, nil
}

func (r *fakeLinkRepo) MarkRevoked(ctx context.Context, id string) error {
	link := r.links[id]
	link.Status = bookinglink.StatusRevoked
	r.links[id] = link
	return nil
}

func (r *fakeLinkRepo) WithTx(tx pgx.Tx) bookinglink.Repository { return r }

type fakeApptRepo struct {
	appts map[string]appointment.Appointment
}

func (r *fakeApptRepo) Create(ctx context.Context, appt appointment.Appointment) (appointment.Appointment, error) {
	r.appts[appt.ID] = appt
	return appt, nil
}

func (r *fakeApptRepo) GetByID(ctx context.Context, id string) (appointment.Appointment, error) {
	appt, ok := r.appts[id]
	if !ok {
		return appointment.Appointment{}, appointment.ErrAppointmentNotFound
	}
	return appt, nil
}

func (r *fakeApptRepo) ListOverdueScheduled(ctx context.Context, before time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByCandidateAndStatus(ctx context.Context, candidateID string, status appointment.Status) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListByCandidate(ctx context.Context, candidateID string) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) ListBlockingByBranchAndRange(ctx context.Context, branchID string, from, to time.Time) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	for _, appt := range r.appts {
		if appt.BranchID == branchID && appt.Blocks() && appt.Overlaps(from, to) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (r *fakeApptRepo) MarkLapsed(ctx context.Context, id string, at time.Time) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) MarkResolved(ctx context.Context, id string, at time.Time, by, reason string, expected []appointment.Status) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) MarkCancelled(ctx context.Context, id string, at time.Time, reason string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) ResolveLapsedTo(ctx context.Context, id string, status appointment.Status, at time.Time, by string, notes *string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) Reschedule(ctx context.Context, id string, newAt, previousAt time.Time, by string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) ListPendingFeedbackReminders(ctx context.Context, completedBefore time.Time) ([]appointment.Appointment, error) {
	return nil, nil
}

func (r *fakeApptRepo) MarkFeedbackReminderSent(ctx context.Context, id string) (bool, error) {
	return false, nil
}

func (r *fakeApptRepo) WithTx(tx pgx.Tx) appointment.Repository { return r }

type fakeSettingsRepo struct {
	settings availability.Settings
}

func (r *fakeSettingsRepo) GetByBranch(ctx context.Context, branchID string) (availability.Settings, error) {
	return r.settings, nil
}

type recordingNotifier struct {
	facts []notification.Fact
}

func (n *recordingNotifier) Emit(ctx context.Context, fact notification.Fact) error {
	n.facts = append(n.facts, fact)
	return nil
}

func (n *recordingNotifier) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*notification.Fact, error) {
	return nil, nil
}

func (n *recordingNotifier) Stop() {}

// ---- fixture ----

// 2026-09-07 is a Monday; reservation attempts happen at 08:00 that morning
var reserveNow = time.Date(2026, 9, 7, 8, 0, 0, 0, time.UTC)

var testCfg = config.BookingConfig{
	LinkExpiry:               168 * time.Hour,
	DefaultMaxUses:           1,
	InterviewDurationMinutes: 30,
	TrialDurationMinutes:     240,
}

type fixture struct {
	mock     pgxmock.PgxPoolIface
	links    *fakeLinkRepo
	appts    *fakeApptRepo
	notifier *recordingNotifier
	svc      Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	links := &fakeLinkRepo{links: make(map[string]bookinglink.BookingLink)}
	appts := &fakeApptRepo{appts: make(map[string]appointment.Appointment)}
	notifier := &recordingNotifier{}

	weekly := availability.WeeklySchedule{}
	for day := time.Monday; day <= time.Friday; day++ {
		weekly[day] = []availability.OpenWindow{{Start: "09:00", End: "17:00"}}
	}
	settings := &fakeSettingsRepo{settings: availability.Settings{
		ID:                  "settings-1",
		Weekly:              weekly,
		SlotDurationMinutes: 30,
		MinimumNoticeHours:  2,
	}}

	clock := func() time.Time { return reserveNow }
	linkService := bookinglinksvc.NewService(links, notifier, testCfg, "https://careers.example.com", clock)
	svc := NewService(mock, links, appts, settings, linkService, notifier, clock)

	return &fixture{mock: mock, links: links, appts: appts, notifier: notifier, svc: svc}
}

func (f *fixture) addLink(secret string, link bookinglink.BookingLink) {
	link.TokenHash = token.Hash(secret)
	if link.Status == "" {
		link.Status = bookinglink.StatusActive
	}
	if link.MaxUses == 0 {
		link.MaxUses = 1
	}
	if link.ExpiresAt.IsZero() {
		link.ExpiresAt = reserveNow.Add(72 * time.Hour)
	}
	f.links.links[link.ID] = link
}

func (f *fixture) expectTx(commit bool) {
	f.mock.ExpectBegin()
	f.mock.ExpectExec("SELECT pg_advisory_xact_lock").
		WithArgs(pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
	if commit {
		f.mock.ExpectCommit()
	} else {
		f.mock.ExpectRollback()
	}
}

// ---- tests ----

func TestReserveCreatesAppointmentAndConsumesLink(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:            "link-1",
		CandidateID:   "cand-1",
		CandidateName: "Alex Chen",
		Type:          bookinglink.TypeInterview,
		BranchID:      "branch-1",
	})
	f.expectTx(true)

	resp, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "cand-1", resp.CandidateID)
	assert.Equal(t, string(appointment.StatusScheduled), resp.Status)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Equal(t, time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), resp.ScheduledAt)

	link := f.links.links["link-1"]
	assert.Equal(t, bookinglink.StatusUsed, link.Status)
	assert.Equal(t, 1, link.UseCount)
	require.NotNil(t, link.AppointmentID)
	assert.Equal(t, resp.ID, *link.AppointmentID)

	require.Len(t, f.notifier.facts, 1)
	assert.Equal(t, notification.TypeAppointmentCreated, f.notifier.facts[0].Type)
	require.NoError(t, f.mock.ExpectationsWereMet())
}

func TestReserveOccupiedSlotConflicts(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeInterview,
		BranchID:    "branch-1",
	})
	f.appts.appts["appt-0"] = appointment.Appointment{
		ID:              "appt-0",
		CandidateID:     "cand-9",
		BranchID:        "branch-1",
		Type:            appointment.TypeInterview,
		ScheduledAt:     time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC),
		DurationMinutes: 30,
		Status:          appointment.StatusScheduled,
	}
	f.expectTx(false)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, appointment.ErrSlotConflict)

	// nothing consumed, nothing created beyond the pre-existing appointment
	assert.Equal(t, bookinglink.StatusActive, f.links.links["link-1"].Status)
	assert.Len(t, f.appts.appts, 1)
}

func TestReserveSlotOutsideScheduleUnavailable(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeInterview,
		BranchID:    "branch-1",
	})
	f.expectTx(false)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "07:00",
	})
	assert.ErrorIs(t, err, appointment.ErrSlotUnavailable)
}

func TestReserveSlotInsideNoticeWindowUnavailable(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeInterview,
		BranchID:    "branch-1",
	})
	f.expectTx(false)

	// 09:00 is inside now + 2h minimum notice
	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "09:00",
	})
	assert.ErrorIs(t, err, appointment.ErrSlotUnavailable)
}

func TestReserveExhaustedLinkRejected(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeInterview,
		BranchID:    "branch-1",
		Status:      bookinglink.StatusUsed,
		MaxUses:     1,
		UseCount:    1,
	})
	f.expectTx(false)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, bookinglink.ErrLinkUsed)
	assert.Empty(t, f.appts.appts)
}

func TestReserveUnknownSecretInvalid(t *testing.T) {
	f := newFixture(t)
	f.expectTx(false)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "no-such-secret",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, bookinglink.ErrLinkInvalid)
}

func TestReserveBranchMismatchInvalid(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeInterview,
		BranchID:    "branch-1",
	})
	f.expectTx(false)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-2",
		Date:     "2026-09-07",
		Time:     "10:00",
	})
	assert.ErrorIs(t, err, bookinglink.ErrLinkInvalid)
}

func TestReserveTrialUsesLongDuration(t *testing.T) {
	f := newFixture(t)
	f.addLink("secret-1", bookinglink.BookingLink{
		ID:          "link-1",
		CandidateID: "cand-1",
		Type:        bookinglink.TypeTrial,
		BranchID:    "branch-1",
	})
	f.expectTx(true)

	resp, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "2026-09-07",
		Time:     "11:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 240, resp.DurationMinutes)
	assert.Equal(t, string(appointment.TypeTrial), resp.Type)
}

func TestReserveRejectsMalformedRequest(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Reserve(context.Background(), ReserveRequest{
		Secret:   "secret-1",
		BranchID: "branch-1",
		Date:     "07-09-2026",
		Time:     "10:00",
	})
	require.Error(t, err)
}
