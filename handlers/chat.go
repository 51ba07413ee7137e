// File: handlers/chat.go
package handlers

import (
	"net/http"
	"strings"

	"innkeeper/services/conversation"
	"innkeeper/utils"

	"github.com/gin-gonic/gin"
)

// maxMessageLen guards against pathological inputs; real guest messages are
// a sentence or two.
const maxMessageLen = 2000

// ChatHandler serves the conversational endpoint.
type ChatHandler struct {
	Conversation conversation.Service
}

// NewChatHandler constructs a ChatHandler.
func NewChatHandler(svc conversation.Service) *ChatHandler {
	return &ChatHandler{Conversation: svc}
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message" binding:"required"`
}

type chatResponse struct {
	SessionID string `json:"sessionId"`
	Reply     string `json:"reply"`
}

// HandleChat runs one conversation turn.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		return
	}
	if len(message) > maxMessageLen {
		message = message[:maxMessageLen]
	}

	reply, sessionID, err := h.Conversation.HandleTurn(c.Request.Context(), req.SessionID, message)
	if err != nil {
		utils.GetLogger().Sugar().Errorw("chat turn failed", "error", err, "session", req.SessionID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process message"})
		return
	}

	c.JSON(http.StatusOK, chatResponse{SessionID: sessionID, Reply: reply})
}
