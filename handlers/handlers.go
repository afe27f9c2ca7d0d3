package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clientRepo "github.com/sharathcodingit/remi-fitness-booking-app/database/repository/client"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/booking"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// HandlerBundle groups the route handlers for registration.
type HandlerBundle struct {
	Auth      *AuthHandler
	Clients   *ClientHandler
	Booking   *BookingHandler
	Payments  *PaymentHandler
	Dashboard *DashboardHandler
}

// respondServiceError maps ledger and booking errors to HTTP statuses. The
// error text is surfaced as the message so the client sees which of the
// causes applies ("already booked" vs "slot taken" vs "no sessions left").
func respondServiceError(c *gin.Context, err error) {
	var (
		validation  *ledger.ValidationError
		duplicate   *ledger.DuplicateClientError
		noRemaining *ledger.NoRemainingSessionsError
		noBooked    *ledger.NoBookedSessionsError
		pastDate    *ledger.PastDateError
		conflict    *ledger.SlotConflictError
	)

	switch {
	case errors.As(err, &validation):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.As(err, &pastDate):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.As(err, &duplicate):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.As(err, &conflict):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.As(err, &noRemaining):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.As(err, &noBooked):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "internal error", err.Error())
	}
}

// persistSnapshot flushes the ledger to the client store after a successful
// mutation. The ledger's contract ends at the in-memory commit, so a failed
// flush is logged rather than unwinding the operation.
func persistSnapshot(ctx context.Context, l *ledger.Ledger, store clientRepo.Store) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, l.Clients()); err != nil {
		utils.GetLogger().Error("failed to persist client snapshot", zap.Error(err))
	}
}
