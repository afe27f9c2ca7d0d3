package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/booking"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

// memSessionStore is an in-memory booking.SessionStore for handler tests.
type memSessionStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingSession
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{drafts: make(map[string]models.BookingSession)}
}

func (s *memSessionStore) Get(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, booking.ErrSessionNotFound
	}
	out := draft
	return &out, nil
}

func (s *memSessionStore) Set(_ context.Context, draft *models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.SessionID] = *draft
	return nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

// bookingTestRouter uses the real clock so the caller-side booking window
// check lines up with the ledger's past-date check.
func bookingTestRouter(t *testing.T) (*gin.Engine, *ledger.Ledger, *memClientStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := ledger.NewLedger()
	store := &memClientStore{}
	svc := &booking.DefaultSessionService{Ledger: l, Store: newMemSessionStore()}
	h := NewBookingHandler(svc, l, store)

	r := gin.New()
	r.GET("/api/calendar/slots", h.AvailableSlotsHandler)
	r.POST("/api/booking/session", h.InitiateSession)
	r.PUT("/api/booking/session/:sessionID", h.UpdateSession)
	r.POST("/api/booking/confirm", h.ConfirmBooking)
	r.DELETE("/api/booking/session/:sessionID", h.CancelSession)
	return r, l, store
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(models.DateLayout)
}

func TestAvailableSlotsHandler(t *testing.T) {
	r, _, _ := bookingTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/calendar/slots?date="+futureDate(3), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "09:00")
	assert.Contains(t, w.Body.String(), "17:00")
}

func TestAvailableSlotsHandler_WindowChecks(t *testing.T) {
	r, _, _ := bookingTestRouter(t)

	// Yesterday.
	w := doJSON(t, r, http.MethodGet, "/api/calendar/slots?date="+futureDate(-1), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Beyond the 30 day window.
	w = doJSON(t, r, http.MethodGet, "/api/calendar/slots?date="+futureDate(45), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Garbage.
	w = doJSON(t, r, http.MethodGet, "/api/calendar/slots?date=someday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingFlow(t *testing.T) {
	r, l, store := bookingTestRouter(t)
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)

	// Step 1: pick the client.
	w := doJSON(t, r, http.MethodPost, "/api/booking/session", gin.H{"clientName": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)
	var draft models.BookingSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	require.NotEmpty(t, draft.SessionID)

	// Step 2: pick a date.
	date := futureDate(3)
	w = doJSON(t, r, http.MethodPut, "/api/booking/session/"+draft.SessionID, gin.H{"date": date})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	assert.Len(t, draft.Availability, models.SlotsPerDay)

	// Step 3: confirm a slot.
	w = doJSON(t, r, http.MethodPost, "/api/booking/confirm", gin.H{
		"sessionID":      draft.SessionID,
		"bookingRequest": gin.H{"date": date, "time": "10:00"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := l.GetClient("Ana")
	require.NoError(t, err)
	assert.Equal(t, []string{date + " 10:00"}, rec.BookedSessions)

	// The confirmed booking was flushed to the store.
	snap := store.lastSnapshot()
	require.Len(t, snap, 1)
	assert.Len(t, snap[0].BookedSessions, 1)

	// The draft is spent.
	w = doJSON(t, r, http.MethodPut, "/api/booking/session/"+draft.SessionID, gin.H{"date": date})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingFlow_Conflict(t *testing.T) {
	r, l, _ := bookingTestRouter(t)
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)
	_, err = l.RegisterClient("Ben", "ben@x.com", 2)
	require.NoError(t, err)

	date := futureDate(3)
	_, err = l.BookSession("Ben", date, "09:00")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/booking/session", gin.H{"clientName": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)
	var draft models.BookingSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))

	w = doJSON(t, r, http.MethodPost, "/api/booking/confirm", gin.H{
		"sessionID":      draft.SessionID,
		"bookingRequest": gin.H{"date": date, "time": "09:30"},
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "another client")
}

func TestInitiateSession_ExhaustedBudget(t *testing.T) {
	r, l, _ := bookingTestRouter(t)
	_, err := l.RegisterClient("Zed", "zed@x.com", 0)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/booking/session", gin.H{"clientName": "Zed"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "no sessions left")
}

func TestCancelSession(t *testing.T) {
	r, l, _ := bookingTestRouter(t)
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/booking/session", gin.H{"clientName": "Ana"})
	require.Equal(t, http.StatusOK, w.Code)
	var draft models.BookingSession
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))

	w = doJSON(t, r, http.MethodDelete, "/api/booking/session/"+draft.SessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/booking/session/"+draft.SessionID, gin.H{"date": futureDate(3)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
