// File: cron/worker.go
package cron

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"innkeeper/config"
	"innkeeper/models"
	"innkeeper/services/notification"
	"innkeeper/utils"

	"github.com/hibiken/asynq"
)

// StartNotificationWorker runs the asynq consumer that delivers queued
// notifications through the HTTP relay. The returned server is stopped during
// graceful shutdown.
func StartNotificationWorker() *asynq.Server {
	logger := utils.GetLogger().Sugar()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisQueueDB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues:      map[string]int{notification.QueueName: 1},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(notification.TaskNotifySend, handleNotifySend)

	go func() {
		if err := srv.Run(mux); err != nil {
			logger.Errorw("notification worker stopped", "error", err)
		}
	}()
	logger.Info("Notification worker started")
	return srv
}

// handleNotifySend posts one notification to the relay. Errors bubble up so
// asynq retries with backoff; a missing relay URL downgrades to log-only.
func handleNotifySend(ctx context.Context, task *asynq.Task) error {
	logger := utils.GetLogger().Sugar()

	var payload models.NotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal notification payload: %w", err)
	}

	relay := config.AppConfig.NotifyRelayURL
	if relay == "" {
		logger.Infow("notification relay not configured, logging only",
			"audience", payload.Audience, "subject", payload.Subject)
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal relay body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, relay, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("relay returned status %d", resp.StatusCode)
	}

	logger.Infow("notification delivered", "audience", payload.Audience, "subject", payload.Subject)
	return nil
}
