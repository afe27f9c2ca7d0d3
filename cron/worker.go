package cron

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"github.com/sharathcodingit/remi-fitness-booking-app/config"
	"github.com/sharathcodingit/remi-fitness-booking-app/models"
	"github.com/sharathcodingit/remi-fitness-booking-app/services/tasks"
	"github.com/sharathcodingit/remi-fitness-booking-app/utils"
)

// InitReminderWorker runs the asynq worker in the background. The handler
// only logs the reminder; delivery transports (email, push) sit outside
// this repo.
func InitReminderWorker() {
	logger := utils.GetLogger()

	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentReminder, handlePaymentReminder)

	go func() {
		logger.Info("starting payment reminder worker")
		if err := srv.Run(mux); err != nil {
			logger.Error("payment reminder worker stopped", zap.Error(err))
		}
	}()
}

func handlePaymentReminder(_ context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("invalid reminder payload", zap.Error(err))
		return err
	}

	logger.Info("payment reminder due",
		zap.String("client", p.ClientName),
		zap.String("email", p.Email),
		zap.String("title", p.Title),
		zap.String("body", p.Body),
	)
	return nil
}

// NewReminderClient returns an asynq client for enqueueing reminder tasks.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
}
