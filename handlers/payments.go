package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	clientRepo "github.com/sharathcodingit/remi-fitness-booking-app/database/repository/client"
	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/tasks"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// ReminderEnqueuer is the slice of asynq.Client the handlers need. A nil
// enqueuer disables reminders.
type ReminderEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// enqueuePaymentReminder hands the reminder to the task queue. Failures are
// logged; a reminder must never fail the triggering request.
func enqueuePaymentReminder(enqueuer ReminderEnqueuer, rec models.ClientRecord) {
	if enqueuer == nil {
		return
	}
	logger := utils.GetLogger()

	task, err := tasks.NewPaymentReminderTask(rec)
	if err != nil {
		logger.Error("failed to build payment reminder", zap.String("client", rec.Name), zap.Error(err))
		return
	}
	if _, err := enqueuer.Enqueue(task); err != nil {
		logger.Error("failed to enqueue payment reminder", zap.String("client", rec.Name), zap.Error(err))
	}
}

// PaymentHandler serves the payment tracking view.
type PaymentHandler struct {
	Ledger    *ledger.Ledger
	Store     clientRepo.Store
	Reminders ReminderEnqueuer
}

func NewPaymentHandler(l *ledger.Ledger, store clientRepo.Store, reminders ReminderEnqueuer) *PaymentHandler {
	return &PaymentHandler{Ledger: l, Store: store, Reminders: reminders}
}

// PaymentsDueHandler handles GET /api/payments/due.
func (h *PaymentHandler) PaymentsDueHandler(c *gin.Context) {
	due := []models.ClientRecord{}
	for _, rec := range h.Ledger.Clients() {
		if ledger.PaymentDue(rec) {
			due = append(due, rec)
		}
	}
	c.JSON(http.StatusOK, gin.H{"due": due})
}

// RemindClientHandler handles POST /api/payments/remind/:name. It flags the
// client as reminded and queues the reminder task.
func (h *PaymentHandler) RemindClientHandler(c *gin.Context) {
	name := c.Param("name")

	rec, err := h.Ledger.GetClient(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !ledger.PaymentDue(*rec) {
		utils.JSONError(c, http.StatusBadRequest, "client still has sessions remaining", name)
		return
	}

	rec, err = h.Ledger.MarkReminderSent(name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	persistSnapshot(c.Request.Context(), h.Ledger, h.Store)
	enqueuePaymentReminder(h.Reminders, *rec)

	c.JSON(http.StatusOK, gin.H{"client": rec})
}
