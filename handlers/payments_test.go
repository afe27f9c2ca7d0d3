package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

func paymentTestRouter(t *testing.T) (*gin.Engine, *ledger.Ledger, *memClientStore, *fakeEnqueuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	l := newTestLedger(t)
	store := &memClientStore{}
	enq := &fakeEnqueuer{}
	h := NewPaymentHandler(l, store, enq)

	r := gin.New()
	r.GET("/api/payments/due", h.PaymentsDueHandler)
	r.POST("/api/payments/remind/:name", h.RemindClientHandler)
	return r, l, store, enq
}

func TestPaymentsDueHandler(t *testing.T) {
	r, l, _, _ := paymentTestRouter(t)
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)
	_, err = l.RegisterClient("Zed", "zed@x.com", 0)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/api/payments/due", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Zed")
	assert.NotContains(t, w.Body.String(), "Ana")
}

func TestRemindClientHandler(t *testing.T) {
	r, l, store, enq := paymentTestRouter(t)
	_, err := l.RegisterClient("Zed", "zed@x.com", 0)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/payments/remind/Zed", nil)
	require.Equal(t, http.StatusOK, w.Code)

	rec, err := l.GetClient("Zed")
	require.NoError(t, err)
	assert.True(t, rec.PaymentReminderSent)
	require.Len(t, enq.tasks, 1)

	snap := store.lastSnapshot()
	require.Len(t, snap, 1)
	assert.True(t, snap[0].PaymentReminderSent)
}

func TestRemindClientHandler_NotDue(t *testing.T) {
	r, l, _, enq := paymentTestRouter(t)
	_, err := l.RegisterClient("Ana", "ana@x.com", 2)
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/payments/remind/Ana", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, enq.tasks)
}

func TestRemindClientHandler_UnknownClient(t *testing.T) {
	r, _, _, _ := paymentTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/payments/remind/Ghost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
