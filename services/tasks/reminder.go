package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
)

const TypePaymentReminder = "reminder:payment"

// NewPaymentReminderTask builds the asynq task for nudging a client whose
// session budget ran out.
func NewPaymentReminderTask(rec models.ClientRecord) (*asynq.Task, error) {
	payload := models.ReminderPayload{
		ClientName: rec.Name,
		Email:      rec.Email,
		Title:      "Training sessions used up",
		Body: fmt.Sprintf("%s has completed all %d sessions; time to arrange the next block.",
			rec.Name, rec.TotalSessions),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypePaymentReminder, b), nil
}
