package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
)

// Layout aliases, kept local for readability.
const (
	DateLayout = models.DateLayout
	TimeLayout = models.TimeLayout
	SlotLayout = models.SlotLayout
)

// Ledger owns the collection of client records and every operation over it.
// All mutations are serialized behind a single mutex; persistence is the
// caller's concern and happens after a successful call.
type Ledger struct {
	mu      sync.Mutex
	clients map[string]*models.ClientRecord

	// Now is the clock used for past-date checks. Overridable in tests.
	Now func() time.Time
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		clients: make(map[string]*models.ClientRecord),
		Now:     time.Now,
	}
}

// Load replaces the ledger contents with the given records, keyed by name.
// Used once at startup to seed from the persistence collaborator.
func (l *Ledger) Load(records []models.ClientRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.clients = make(map[string]*models.ClientRecord, len(records))
	for i := range records {
		rec := records[i]
		if rec.BookedSessions == nil {
			rec.BookedSessions = []string{}
		}
		l.clients[rec.Name] = &rec
	}
}

// RegisterClient inserts a new client with a fresh session budget.
func (l *Ledger) RegisterClient(name, email string, totalSessions int) (*models.ClientRecord, error) {
	if name == "" {
		return nil, &ValidationError{Message: "client name is required"}
	}
	if email == "" {
		return nil, &ValidationError{Message: "client email is required"}
	}
	if totalSessions < 0 {
		return nil, &ValidationError{Message: "total sessions cannot be negative"}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.clients[name]; exists {
		return nil, &DuplicateClientError{Name: name}
	}

	now := l.Now()
	rec := &models.ClientRecord{
		Name:              name,
		Email:             email,
		TotalSessions:     totalSessions,
		SessionsCompleted: 0,
		SessionsRemaining: totalSessions,
		BookedSessions:    []string{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	l.clients[name] = rec

	out := cloneRecord(rec)
	return &out, nil
}

// AvailableSlots returns the free hourly slots for a date, ascending by
// hour. A slot is free when no client's booking, on any date, falls within
// 60 minutes of it: one appointment occupies the trainer regardless of
// which client holds it.
func (l *Ledger) AvailableSlots(date string) ([]models.AppointmentSlot, error) {
	day, err := time.ParseInLocation(DateLayout, date, time.Local)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", date)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	var slots []models.AppointmentSlot
	for hour := models.DayFirstHour; hour <= models.DayLastHour; hour++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.Local)
		if owner, _ := l.findConflict(candidate); owner == "" {
			slots = append(slots, models.AppointmentSlot{
				Date: date,
				Time: candidate.Format(TimeLayout),
			})
		}
	}
	return slots, nil
}

// BookSession appends a slot to the client's booking queue after the
// conflict checks pass. Counters are untouched; only completion moves them.
func (l *Ledger) BookSession(clientName, date, slotTime string) (*models.ClientRecord, error) {
	candidate, err := time.ParseInLocation(SlotLayout, date+" "+slotTime, time.Local)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid slot %q %q, expected YYYY-MM-DD and HH:MM", date, slotTime)}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.clients[clientName]
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown client %q", clientName)}
	}
	if rec.SessionsRemaining == 0 {
		return nil, &NoRemainingSessionsError{Name: clientName}
	}
	if candidate.Before(l.Now()) {
		return nil, &PastDateError{When: candidate.Format(SlotLayout)}
	}

	stamp := candidate.Format(SlotLayout)
	for _, booked := range rec.BookedSessions {
		if booked == stamp {
			return nil, &SlotConflictError{When: stamp, Owner: clientName, OwnBooking: true}
		}
	}
	if owner, when := l.findConflict(candidate); owner != "" {
		return nil, &SlotConflictError{When: when, Owner: owner, OwnBooking: owner == clientName}
	}

	rec.BookedSessions = append(rec.BookedSessions, stamp)
	rec.UpdatedAt = l.Now()

	out := cloneRecord(rec)
	return &out, nil
}

// CompleteEarliestSession pops the front of the client's booking queue
// (first booked, first completed, not necessarily the chronologically
// nearest) and moves one session from remaining to completed. It returns
// the updated record and the timestamp that was completed.
func (l *Ledger) CompleteEarliestSession(clientName string) (*models.ClientRecord, string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.clients[clientName]
	if !ok {
		return nil, "", &ValidationError{Message: fmt.Sprintf("unknown client %q", clientName)}
	}
	if rec.SessionsRemaining == 0 {
		return nil, "", &NoRemainingSessionsError{Name: clientName}
	}
	if len(rec.BookedSessions) == 0 {
		return nil, "", &NoBookedSessionsError{Name: clientName}
	}

	completed := rec.BookedSessions[0]
	rec.BookedSessions = rec.BookedSessions[1:]
	rec.SessionsCompleted++
	rec.SessionsRemaining--
	rec.UpdatedAt = l.Now()

	if rec.SessionsCompleted+rec.SessionsRemaining != rec.TotalSessions {
		return nil, "", fmt.Errorf("session counters out of balance for %s: %d completed + %d remaining != %d total",
			clientName, rec.SessionsCompleted, rec.SessionsRemaining, rec.TotalSessions)
	}

	out := cloneRecord(rec)
	return &out, completed, nil
}

// PaymentDue reports whether the client has used up their session budget.
func PaymentDue(rec models.ClientRecord) bool {
	return rec.SessionsRemaining == 0
}

// MarkReminderSent flags that a payment reminder went out for the client.
func (l *Ledger) MarkReminderSent(clientName string) (*models.ClientRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.clients[clientName]
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown client %q", clientName)}
	}
	rec.PaymentReminderSent = true
	rec.UpdatedAt = l.Now()

	out := cloneRecord(rec)
	return &out, nil
}

// GetClient returns a copy of the named client's record.
func (l *Ledger) GetClient(name string) (*models.ClientRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec, ok := l.clients[name]
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown client %q", name)}
	}
	out := cloneRecord(rec)
	return &out, nil
}

// GetClientByEmail returns the first client matching the email. Email
// uniqueness is assumed by the login-by-email flow, not enforced here.
func (l *Ledger) GetClientByEmail(email string) (*models.ClientRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, rec := range l.clients {
		if rec.Email == email {
			out := cloneRecord(rec)
			return &out, nil
		}
	}
	return nil, &ValidationError{Message: fmt.Sprintf("no client with email %q", email)}
}

// Clients returns a snapshot of all records, sorted by name.
func (l *Ledger) Clients() []models.ClientRecord {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.ClientRecord, 0, len(l.clients))
	for _, rec := range l.clients {
		out = append(out, cloneRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// findConflict scans every booking of every client and returns the owner
// and timestamp of the first booking strictly less than 60 minutes away
// from the candidate. Callers must hold the mutex. Stored timestamps that
// fail to parse are skipped; the load path already warns about them.
func (l *Ledger) findConflict(candidate time.Time) (owner, when string) {
	for name, rec := range l.clients {
		for _, booked := range rec.BookedSessions {
			ts, err := time.ParseInLocation(SlotLayout, booked, time.Local)
			if err != nil {
				continue
			}
			diff := candidate.Sub(ts)
			if diff < 0 {
				diff = -diff
			}
			if diff < time.Hour {
				return name, booked
			}
		}
	}
	return "", ""
}

func cloneRecord(rec *models.ClientRecord) models.ClientRecord {
	out := *rec
	out.BookedSessions = append([]string{}, rec.BookedSessions...)
	return out
}
