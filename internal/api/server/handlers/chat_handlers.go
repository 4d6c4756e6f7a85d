package handlers

import (
	"net/http"

	"github.com/bz888/nopickles/internal/api/server/client"
	"github.com/bz888/nopickles/internal/chat"
	"github.com/bz888/nopickles/internal/logger"
	"github.com/gin-gonic/gin"
)

// ChatHandler serves POST /api/chat. The client sends its whole history; the
// system prompt is added only on the first turn.
func (h *Handler) ChatHandler(c *gin.Context) {
	localLogger := logger.NewLogger("chat handler")

	var req chat.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		localLogger.Warn("Rejected chat request: ", err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	messages := req.Messages
	if len(messages) == 1 {
		messages = append([]chat.Message{{Role: chat.RoleSystem, Content: h.systemPrompt}}, messages...)
	}

	localLogger.Info("Chat with ", h.chatClient.Model(), ", ", len(messages), " messages")
	reply, err := h.chatClient.Complete(c.Request.Context(), &client.CompletionRequest{
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		localLogger.Error("Chat failed: ", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Error processing chat: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, chat.Response{Message: reply})
}
