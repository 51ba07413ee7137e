// File: services/session/interface.go
package session

import (
	"context"

	"innkeeper/models"
)

// SessionStore is the keyed store behind per-conversation state. Get returns
// (nil, nil) for an unknown or expired id; the orchestrator then starts a
// fresh session under the same id. Implementations must be safe for
// concurrent use across session ids.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, s *models.Session) error
	Delete(ctx context.Context, id string) error
}
