// File: services/nlu/interface.go
package nlu

import (
	"context"

	"innkeeper/models"
)

// ClassifyRequest carries the message plus the conversational snapshot the
// external service needs: recent history and the current flow/step.
type ClassifyRequest struct {
	Message string          `json:"message"`
	History []models.Turn   `json:"history,omitempty"`
	Flow    models.FlowKind `json:"flow,omitempty"`
	Step    string          `json:"step,omitempty"`
}

// Classifier is the single seam to the external NLU service. Implementations
// must bound their own latency and coerce every response into the closed
// intent set; on any transport or parse failure they return the all-default
// Interpretation together with the underlying error, so the caller can log it
// and still produce a reply.
type Classifier interface {
	Classify(ctx context.Context, req ClassifyRequest) (models.Interpretation, error)
}
