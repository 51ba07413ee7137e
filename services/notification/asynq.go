// File: services/notification/asynq.go
package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"innkeeper/config"
	"innkeeper/models"
	"innkeeper/utils"

	"github.com/hibiken/asynq"
)

// QueueName is the asynq queue notifications travel on.
const QueueName = "notifications"

// AsynqNotifier enqueues notification tasks onto Redis for the background
// worker to deliver.
type AsynqNotifier struct {
	client *asynq.Client
}

// NewAsynqNotifier builds a notifier over the configured Redis queue DB.
func NewAsynqNotifier() *AsynqNotifier {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	return &AsynqNotifier{client: client}
}

func (n *AsynqNotifier) Enqueue(ctx context.Context, payload models.NotifyPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	task := asynq.NewTask(TaskNotifySend, data)
	info, err := n.client.EnqueueContext(ctx, task, asynq.Queue(QueueName), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	utils.GetLogger().Sugar().Infow("notification enqueued",
		"taskID", info.ID, "audience", payload.Audience, "subject", payload.Subject)
	return nil
}

// Close releases the underlying queue connection.
func (n *AsynqNotifier) Close() error {
	return n.client.Close()
}
