// File: services/conversation/interface.go
package conversation

import (
	"context"

	"innkeeper/services/catalog"
	"innkeeper/services/flow"
	"innkeeper/services/knowledge"
	"innkeeper/services/router"
	"innkeeper/services/session"
)

// Service is the conversation orchestrator: one guest message in, one
// assistant reply out, with all state living in the session store.
type Service interface {
	// HandleTurn processes one message. An empty or unknown sessionID starts
	// a fresh conversation; the effective id is returned with the reply.
	HandleTurn(ctx context.Context, sessionID, message string) (reply, id string, err error)
}

// DefaultConversationService wires the routing, flow and knowledge layers.
type DefaultConversationService struct {
	Sessions  session.SessionStore
	Router    router.Router
	Flows     flow.Service
	Knowledge knowledge.Service
	Catalog   catalog.CatalogService
}

// NewDefaultConversationService builds the production orchestrator.
func NewDefaultConversationService(
	sessions session.SessionStore,
	rt router.Router,
	flows flow.Service,
	know knowledge.Service,
	cat catalog.CatalogService,
) *DefaultConversationService {
	return &DefaultConversationService{
		Sessions:  sessions,
		Router:    rt,
		Flows:     flows,
		Knowledge: know,
		Catalog:   cat,
	}
}
