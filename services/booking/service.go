package booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

// Initiate starts a booking draft for the named client. Clients with an
// exhausted budget are turned away before a draft is created.
func (s *DefaultSessionService) Initiate(ctx context.Context, clientName string) (*models.BookingSession, error) {
	rec, err := s.Ledger.GetClient(clientName)
	if err != nil {
		return nil, err
	}
	if rec.SessionsRemaining == 0 {
		return nil, &ledger.NoRemainingSessionsError{Name: clientName}
	}

	draft := &models.BookingSession{
		SessionID:  uuid.New().String(),
		ClientName: clientName,
	}
	if err := s.Store.Set(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Update records the chosen date on the draft and recomputes the available
// slots for it.
func (s *DefaultSessionService) Update(ctx context.Context, sessionID, date string) (*models.BookingSession, error) {
	draft, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	slots, err := s.Ledger.AvailableSlots(date)
	if err != nil {
		return nil, err
	}
	draft.Date = date
	draft.Availability = slots

	if err := s.Store.Set(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Confirm books the chosen slot through the ledger and discards the draft.
func (s *DefaultSessionService) Confirm(ctx context.Context, sessionID, date, slotTime string) (*models.ClientRecord, error) {
	draft, err := s.Store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if date == "" {
		date = draft.Date
	}

	rec, err := s.Ledger.BookSession(draft.ClientName, date, slotTime)
	if err != nil {
		return nil, err
	}

	// Best effort: an expired draft at this point changes nothing.
	_ = s.Store.Delete(ctx, sessionID)
	return rec, nil
}

// Cancel discards the draft.
func (s *DefaultSessionService) Cancel(ctx context.Context, sessionID string) error {
	return s.Store.Delete(ctx, sessionID)
}
