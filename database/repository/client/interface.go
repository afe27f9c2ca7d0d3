package clientRepo

import (
	"context"
	"time"

	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"

	"go.uber.org/zap"
)

// Store persists the full client record set, keyed by client name. The
// ledger's contract ends at the in-memory commit; callers invoke Save after
// every successful mutation and Load once at startup.
type Store interface {
	Load(ctx context.Context) ([]models.ClientRecord, error)
	Save(ctx context.Context, records []models.ClientRecord) error
}

// sanitizeBookings drops malformed booked-session timestamps individually
// instead of failing the record. Missing data becomes the empty list.
func sanitizeBookings(clientName string, raw []string) []string {
	out := []string{}
	for _, stamp := range raw {
		if stamp == "" {
			continue
		}
		if _, err := time.ParseInLocation(models.SlotLayout, stamp, time.Local); err != nil {
			utils.GetLogger().Warn("skipping malformed booked session",
				zap.String("client", clientName), zap.String("timestamp", stamp))
			continue
		}
		out = append(out, stamp)
	}
	return out
}
