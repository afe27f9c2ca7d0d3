package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory
// state. Either client may be nil when the corresponding backend is not in
// use; a nil client reports healthy.
func StartHealthMonitor(redisClient *redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			redisHealthy := true
			if redisClient != nil {
				redisHealthy = redisClient.Ping(ctx).Err() == nil
			}

			mongoHealthy := true
			if mongoClient != nil {
				mongoHealthy = mongoClient.Ping(ctx, nil) == nil
			}

			healthMu.Lock()
			currentHealth = HealthStatus{
				Mongo:     mongoHealthy,
				Redis:     redisHealthy,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
