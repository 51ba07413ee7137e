// File: services/knowledge/interface.go
package knowledge

import (
	"context"

	"innkeeper/models"
)

// Service answers informational questions from the business facts, falling
// back to the semantic search sidecar for anything off the beaten path.
type Service interface {
	// Answer renders the canned answer for an informational intent; ok is
	// false when the intent has no brand-fact answer.
	Answer(intent models.Intent) (string, bool)
	// Search asks the semantic search sidecar; ok is false when the sidecar
	// is unconfigured, unreachable or not confident enough.
	Search(ctx context.Context, query string) (string, bool)
}
