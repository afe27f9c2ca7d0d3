package models

import "time"

// ClientRecord represents a training client and their session budget.
// Name is the unique key within the ledger. The counters satisfy
// SessionsCompleted + SessionsRemaining == TotalSessions at all times.
type ClientRecord struct {
	Name              string `json:"name" bson:"name"`
	Email             string `json:"email" bson:"email"`
	TotalSessions     int    `json:"totalSessions" bson:"totalSessions"`
	SessionsCompleted int    `json:"sessionsCompleted" bson:"sessionsCompleted"`
	SessionsRemaining int    `json:"sessionsRemaining" bson:"sessionsRemaining"`

	// BookedSessions holds "YYYY-MM-DD HH:MM" timestamps in booking order.
	// The front of the slice is completed first, regardless of date order.
	BookedSessions []string `json:"bookedSessions" bson:"bookedSessions"`

	// PaymentReminderSent tracks whether the trainer has nudged the client
	// to buy a new session block. Reset is a manual concern.
	PaymentReminderSent bool `json:"paymentReminderSent" bson:"paymentReminderSent"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}
