package ledger

import "fmt"

// ValidationError signals bad or missing input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Message
}

// DuplicateClientError signals that a client with the same name is already
// registered. The original record is left untouched.
type DuplicateClientError struct {
	Name string
}

func (e *DuplicateClientError) Error() string {
	return fmt.Sprintf("client %q is already registered", e.Name)
}

// NoRemainingSessionsError signals that the client's session budget is used
// up; payment is due before anything else can happen.
type NoRemainingSessionsError struct {
	Name string
}

func (e *NoRemainingSessionsError) Error() string {
	return fmt.Sprintf("%s has no sessions left; payment is due", e.Name)
}

// NoBookedSessionsError signals a completion attempt with an empty booking
// queue.
type NoBookedSessionsError struct {
	Name string
}

func (e *NoBookedSessionsError) Error() string {
	return fmt.Sprintf("%s has no booked sessions to complete", e.Name)
}

// PastDateError signals that the requested slot is earlier than now.
type PastDateError struct {
	When string
}

func (e *PastDateError) Error() string {
	return fmt.Sprintf("cannot book %s: slot is in the past", e.When)
}

// SlotConflictError signals that the requested slot falls within an hour of
// an existing booking. OwnBooking distinguishes "you already booked this
// slot" from "another client holds this slot".
type SlotConflictError struct {
	When       string
	Owner      string
	OwnBooking bool
}

func (e *SlotConflictError) Error() string {
	if e.OwnBooking {
		return fmt.Sprintf("you already have a session booked within an hour of %s", e.When)
	}
	return fmt.Sprintf("another client already holds a session within an hour of %s", e.When)
}
