package server

import (
	"io"
	"net/http"
	"time"

	"github.com/bz888/nopickles/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// requestID tags every request with an id, reusing the caller's when present.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDHeader, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// requestLogger replaces gin's stdout logger, which would draw over the UI.
func requestLogger() gin.HandlerFunc {
	localLogger := logger.NewLogger("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		localLogger.Info(
			c.GetString(requestIDHeader), " ",
			c.Request.Method, " ", c.Request.URL.Path, " ",
			c.Writer.Status(), " ", time.Since(start).Round(time.Millisecond),
		)
	}
}

func recovery() gin.HandlerFunc {
	localLogger := logger.NewLogger("http")
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, err any) {
		localLogger.Error("Panic serving ", c.Request.URL.Path, ": ", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal Server Error"})
	})
}
