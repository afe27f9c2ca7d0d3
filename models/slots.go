package models

// The trainer works fixed hourly slots, 09:00 through 17:00.
const (
	DayFirstHour = 9
	DayLastHour  = 17
	SlotsPerDay  = DayLastHour - DayFirstHour + 1
)

// Timestamp layouts shared by the ledger and the client stores. Bookings
// are stored as local date+hour strings with no timezone.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
	SlotLayout = "2006-01-02 15:04"
)

// AppointmentSlot is a bookable (date, hour) pair. Slots are derived, not
// stored; a slot exists as a booking only through some client's queue.
type AppointmentSlot struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Time string `json:"time"` // "HH:MM"
}
