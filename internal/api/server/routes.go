package server

import (
	"github.com/bz888/nopickles/internal/api/server/handlers"
	"github.com/gin-gonic/gin"
)

func registerRoutes(r *gin.Engine, handler *handlers.Handler) {
	r.GET("/health", handler.HealthHandler)

	api := r.Group("/api")
	api.GET("/menu", handler.MenuHandler)
	api.POST("/chat", handler.ChatHandler)
}
