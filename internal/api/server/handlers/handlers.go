package handlers

import (
	"net/http"

	"github.com/bz888/nopickles/internal/api/server/client"
	"github.com/bz888/nopickles/internal/menu"
	"github.com/gin-gonic/gin"
)

const (
	serviceName = "nopickles-mvp"

	temperature = 0.7
	maxTokens   = 500
)

type Handler struct {
	chatClient   client.ChatClient
	menu         menu.Menu
	systemPrompt string
}

func NewHandler(chatClient client.ChatClient, m menu.Menu) *Handler {
	return &Handler{
		chatClient:   chatClient,
		menu:         m,
		systemPrompt: menu.SystemPrompt(m),
	}
}

// MenuHandler serves GET /api/menu.
func (h *Handler) MenuHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.menu)
}

// HealthHandler serves GET /health.
func (h *Handler) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
}
