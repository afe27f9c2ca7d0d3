package handlers

import (
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/ledger"
)

// DashboardHandler serves the landing page data: today's sessions, recent
// clients and payment reminders.
type DashboardHandler struct {
	Ledger *ledger.Ledger
}

func NewDashboardHandler(l *ledger.Ledger) *DashboardHandler {
	return &DashboardHandler{Ledger: l}
}

type todaySession struct {
	ClientName string `json:"clientName"`
	Time       string `json:"time"`
}

// GetDashboardHandler handles GET /api/dashboard.
func (h *DashboardHandler) GetDashboardHandler(c *gin.Context) {
	clients := h.Ledger.Clients()
	today := time.Now().Format(models.DateLayout)

	// Today's sessions, sorted chronologically. This sort is display-only;
	// completion order stays first-booked-first-completed.
	sessions := []todaySession{}
	for _, rec := range clients {
		for _, booked := range rec.BookedSessions {
			if strings.HasPrefix(booked, today+" ") {
				sessions = append(sessions, todaySession{
					ClientName: rec.Name,
					Time:       strings.TrimPrefix(booked, today+" "),
				})
			}
		}
	}
	sort.Slice(sessions, func(i, j int) bool { return sessions[i].Time < sessions[j].Time })

	recent := make([]models.ClientRecord, len(clients))
	copy(recent, clients)
	sort.Slice(recent, func(i, j int) bool { return recent[i].CreatedAt.After(recent[j].CreatedAt) })
	if len(recent) > 5 {
		recent = recent[:5]
	}

	reminders := []models.ClientRecord{}
	for _, rec := range clients {
		if ledger.PaymentDue(rec) {
			reminders = append(reminders, rec)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"todaysSessions":   sessions,
		"recentClients":    recent,
		"paymentReminders": reminders,
	})
}
