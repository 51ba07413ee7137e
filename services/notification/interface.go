// File: services/notification/interface.go
package notification

import (
	"context"

	"innkeeper/models"
)

// TaskNotifySend is the queue task type consumed by the notification worker.
const TaskNotifySend = "notify:send"

// Notifier hands outbound messages (guest confirmations, staff alerts) to the
// delivery worker. Enqueueing must never block a conversation turn on the
// actual delivery.
type Notifier interface {
	Enqueue(ctx context.Context, payload models.NotifyPayload) error
}
