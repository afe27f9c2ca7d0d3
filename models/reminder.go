package models

// ReminderPayload is the asynq task payload for a payment reminder.
type ReminderPayload struct {
	ClientName string `json:"clientName"`
	Email      string `json:"email"`
	Title      string `json:"title"`
	Body       string `json:"body"`
}
