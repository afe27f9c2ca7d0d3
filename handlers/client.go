package handlers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	clientRepo "github.com/sharathcodingit/remi-fitness-booking-app/database/repository/client"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// ClientHandler serves client registration, listing and session completion.
type ClientHandler struct {
	Ledger    *ledger.Ledger
	Store     clientRepo.Store
	Reminders ReminderEnqueuer
}

func NewClientHandler(l *ledger.Ledger, store clientRepo.Store, reminders ReminderEnqueuer) *ClientHandler {
	return &ClientHandler{Ledger: l, Store: store, Reminders: reminders}
}

// RegisterClientHandler handles POST /api/clients/register.
func (h *ClientHandler) RegisterClientHandler(c *gin.Context) {
	var req struct {
		Name          string `json:"name"`
		Email         string `json:"email"`
		TotalSessions int    `json:"totalSessions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid registration payload", err.Error())
		return
	}

	rec, err := h.Ledger.RegisterClient(req.Name, req.Email, req.TotalSessions)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	persistSnapshot(c.Request.Context(), h.Ledger, h.Store)

	c.JSON(http.StatusCreated, rec)
}

// ListClientsHandler handles GET /api/clients.
func (h *ClientHandler) ListClientsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"clients": h.Ledger.Clients()})
}

// GetClientByEmailHandler handles GET /api/clients/email/:email, the
// login-by-email lookup used by the client-facing form.
func (h *ClientHandler) GetClientByEmailHandler(c *gin.Context) {
	email := c.Param("email")
	rec, err := h.Ledger.GetClientByEmail(email)
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "client not found", email)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CompleteSessionHandler handles POST /api/clients/:name/complete. It pops
// the head of the client's booking queue and moves the counters.
func (h *ClientHandler) CompleteSessionHandler(c *gin.Context) {
	name := c.Param("name")

	rec, completed, err := h.Ledger.CompleteEarliestSession(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	persistSnapshot(c.Request.Context(), h.Ledger, h.Store)

	// A completion that empties the budget makes payment due.
	if ledger.PaymentDue(*rec) {
		enqueuePaymentReminder(h.Reminders, *rec)
	}

	c.JSON(http.StatusOK, gin.H{
		"client":           rec,
		"completedSession": completed,
		"paymentDue":       ledger.PaymentDue(*rec),
	})
}

// ExportClientsHandler handles GET /api/clients/export with a CSV download
// of the current snapshot.
func (h *ClientHandler) ExportClientsHandler(c *gin.Context) {
	logger := utils.GetLogger()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="clients.csv"`)

	writer := csv.NewWriter(c.Writer)
	header := []string{"name", "email", "total_sessions", "sessions_completed",
		"sessions_remaining", "booked_sessions", "payment_due"}
	if err := writer.Write(header); err != nil {
		logger.Error("failed to write export header", zap.Error(err))
		return
	}
	for _, rec := range h.Ledger.Clients() {
		row := []string{
			rec.Name,
			rec.Email,
			strconv.Itoa(rec.TotalSessions),
			strconv.Itoa(rec.SessionsCompleted),
			strconv.Itoa(rec.SessionsRemaining),
			strings.Join(rec.BookedSessions, ";"),
			strconv.FormatBool(ledger.PaymentDue(rec)),
		}
		if err := writer.Write(row); err != nil {
			logger.Error("failed to write export row", zap.String("client", rec.Name), zap.Error(err))
			return
		}
	}
	writer.Flush()
}
