package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	clientRepo "github.com/sharathcodingit/remi-fitness-booking-app/database/repository/client"
	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/booking"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// bookingWindowDays is how far ahead the form lets the trainer browse.
const bookingWindowDays = 30

// BookingHandler serves the multi-step booking form and the calendar view.
type BookingHandler struct {
	Service booking.SessionService
	Ledger  *ledger.Ledger
	Store   clientRepo.Store
}

func NewBookingHandler(svc booking.SessionService, l *ledger.Ledger, store clientRepo.Store) *BookingHandler {
	return &BookingHandler{Service: svc, Ledger: l, Store: store}
}

// checkBookingWindow keeps dates inside today .. today+30 days. The ledger
// itself imposes no date bound; the window is this caller's concern.
func checkBookingWindow(date string) (string, bool) {
	day, err := time.ParseInLocation(models.DateLayout, date, time.Local)
	if err != nil {
		return "invalid date, expected YYYY-MM-DD", false
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if day.Before(today) {
		return "date is in the past", false
	}
	if day.After(today.AddDate(0, 0, bookingWindowDays)) {
		return "date is beyond the booking window", false
	}
	return "", true
}

// AvailableSlotsHandler handles GET /api/calendar/slots?date=YYYY-MM-DD.
func (h *BookingHandler) AvailableSlotsHandler(c *gin.Context) {
	date := c.Query("date")
	if msg, ok := checkBookingWindow(date); !ok {
		utils.JSONError(c, http.StatusBadRequest, msg, date)
		return
	}

	slots, err := h.Ledger.AvailableSlots(date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// InitiateSession handles POST /api/booking/session: pick a client, get a
// draft back.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var req struct {
		ClientName string `json:"clientName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	draft, err := h.Service.Initiate(c.Request.Context(), req.ClientName)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateSession handles PUT /api/booking/session/:sessionID: pick a date,
// get the availability for it.
func (h *BookingHandler) UpdateSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var req models.BookingRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}
	if msg, ok := checkBookingWindow(req.Date); !ok {
		utils.JSONError(c, http.StatusBadRequest, msg, req.Date)
		return
	}

	draft, err := h.Service.Update(c.Request.Context(), sessionID, req.Date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

// ConfirmBooking handles POST /api/booking/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var req struct {
		SessionID string                     `json:"sessionID" binding:"required"`
		Booking   models.BookingRequestInput `json:"bookingRequest"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking request", err.Error())
		return
	}

	rec, err := h.Service.Confirm(c.Request.Context(), req.SessionID, req.Booking.Date, req.Booking.Time)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	persistSnapshot(c.Request.Context(), h.Ledger, h.Store)

	c.JSON(http.StatusOK, gin.H{"client": rec})
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Service.Cancel(c.Request.Context(), sessionID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking session cancelled"})
}
