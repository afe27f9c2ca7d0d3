package booking

import (
	"context"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

// SessionService drives the multi-step booking form: pick a client, pick a
// date, confirm a slot. Drafts live in the session store between steps;
// nothing touches the ledger until Confirm.
type SessionService interface {
	Initiate(ctx context.Context, clientName string) (*models.BookingSession, error)
	Update(ctx context.Context, sessionID, date string) (*models.BookingSession, error)
	Confirm(ctx context.Context, sessionID, date, slotTime string) (*models.ClientRecord, error)
	Cancel(ctx context.Context, sessionID string) error
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Ledger *ledger.Ledger
	Store  SessionStore
}
