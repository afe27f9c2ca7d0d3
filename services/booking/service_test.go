package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

// memSessionStore is an in-memory SessionStore for tests.
type memSessionStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{drafts: make(map[string]models.BookingSession)}
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	out := draft
	return &out, nil
}

func (s *memSessionStore) Set(_ context.Context, draft *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.SessionID] = *draft
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

func newTestService(t *testing.T) (*DefaultSessionService, *ledger.Ledger) {
	t.Helper()
	l := ledger.NewLedger()
	l.Now = func() time.Time {
		return time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	}
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)

	return &DefaultSessionService{Ledger: l, Store: newMemSessionStore()}, l
}

func TestSessionFlow(t *testing.T) {
	svc, l := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Initiate(ctx, "Ana")
	require.NoError(t, err)
	require.NotEmpty(t, draft.SessionID)
	assert.Equal(t, "Ana", draft.ClientName)

	draft, err = svc.Update(ctx, draft.SessionID, "2024-06-03")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-03", draft.Date)
	assert.Len(t, draft.Availability, models.SlotsPerDay)

	rec, err := svc.Confirm(ctx, draft.SessionID, "", "09:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03 09:00"}, rec.BookedSessions)

	// The draft is gone once confirmed.
	_, err = svc.Update(ctx, draft.SessionID, "2024-06-04")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// The booking landed in the ledger.
	got, err := l.GetClient("Ana")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-03 09:00"}, got.BookedSessions)
}

func TestInitiate_UnknownClient(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Initiate(context.Background(), "Nobody")
	var verr *ledger.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestInitiate_ExhaustedBudget(t *testing.T) {
	svc, l := newTestService(t)
	_, err := l.RegisterClient("Zed", "zed@x.com", 0)
	require.NoError(t, err)

	_, err = svc.Initiate(context.Background(), "Zed")
	var noRemaining *ledger.NoRemainingSessionsError
	assert.ErrorAs(t, err, &noRemaining)
}

func TestUpdate_ReflectsExistingBookings(t *testing.T) {
	svc, l := newTestService(t)
	ctx := context.Background()

	_, err := l.RegisterClient("Ben", "ben@x.com", 2)
	require.NoError(t, err)
	_, err = l.BookSession("Ben", "2024-06-03", "09:00")
	require.NoError(t, err)

	draft, err := svc.Initiate(ctx, "Ana")
	require.NoError(t, err)
	draft, err = svc.Update(ctx, draft.SessionID, "2024-06-03")
	require.NoError(t, err)

	for _, slot := range draft.Availability {
		assert.NotEqual(t, "09:00", slot.Time, "Ben's slot must not be offered")
	}
}

func TestConfirm_ConflictKeepsDraft(t *testing.T) {
	svc, l := newTestService(t)
	ctx := context.Background()

	_, err := l.RegisterClient("Ben", "ben@x.com", 2)
	require.NoError(t, err)
	_, err = l.BookSession("Ben", "2024-06-03", "09:00")
	require.NoError(t, err)

	draft, err := svc.Initiate(ctx, "Ana")
	require.NoError(t, err)
	_, err = svc.Update(ctx, draft.SessionID, "2024-06-03")
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, draft.SessionID, "", "09:30")
	var conflict *ledger.SlotConflictError
	require.ErrorAs(t, err, &conflict)

	// The draft survives a failed confirmation so the form can retry.
	_, err = svc.Confirm(ctx, draft.SessionID, "", "11:00")
	require.NoError(t, err)
}

func TestCancel(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	draft, err := svc.Initiate(ctx, "Ana")
	require.NoError(t, err)
	require.NoError(t, svc.Cancel(ctx, draft.SessionID))

	_, err = svc.Update(ctx, draft.SessionID, "2024-06-03")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
