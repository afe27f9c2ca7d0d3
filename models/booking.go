package models

// BookingSession is a multi-step booking form draft. It lives in the session
// store between the client pick and the final confirmation.
type BookingSession struct {
	SessionID    string            `json:"sessionID"`
	ClientName   string            `json:"clientName"`
	Date         string            `json:"date,omitempty"`
	Availability []AppointmentSlot `json:"availability,omitempty"`
}

// BookingRequestInput is the payload for updating or confirming a booking
// session.
type BookingRequestInput struct {
	Date string `json:"date"`
	Time string `json:"time"`
}
