package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bz888/nopickles/internal/api/server/client"
	"github.com/bz888/nopickles/internal/api/server/handlers"
	"github.com/bz888/nopickles/internal/config"
	"github.com/bz888/nopickles/internal/logger"
	"github.com/bz888/nopickles/internal/menu"
	"github.com/gin-gonic/gin"
)

const ollamaProbeTimeout = 2 * time.Second

// Server is the embedded chat server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	log        *logger.Logger
}

// NewRouter builds the gin engine serving the menu and chat endpoints.
func NewRouter(chatClient client.ChatClient, m menu.Menu) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(recovery(), requestID(), requestLogger())
	registerRoutes(r, handlers.NewHandler(chatClient, m))
	return r
}

// Start listens on addr before returning, so the client can fetch the menu
// right away, then serves in the background.
func Start(addr string, handler http.Handler) (*Server, error) {
	localLogger := logger.NewLogger("Server")

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}

	s := &Server{
		httpServer: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: 3 * time.Second,
		},
		listener: ln,
		log:      localLogger,
	}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			localLogger.Error("Server stopped: ", err)
		}
	}()
	localLogger.Info("Server started on " + config.LocalURL(ln.Addr().String()) + "/")
	return s, nil
}

// Addr is the address actually bound, useful with ":0".
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down server")
	return s.httpServer.Shutdown(ctx)
}

// InitializeClient picks the upstream model: OpenAI when a key is set, a
// reachable local Ollama otherwise, and a keyless OpenAI client as the last
// resort so the menu is still served.
func InitializeClient(ctx context.Context) client.ChatClient {
	localLogger := logger.NewLogger("Server")

	openAIKey := config.Getenv(config.OpenAIKeyEnv, "")
	openAIModel := config.Getenv(config.OpenAIModelEnv, config.DefaultOpenAIModel)
	if openAIKey != "" {
		localLogger.Info("OpenAI client initialized, model ", openAIModel)
		return client.NewOpenAIClient(client.DefaultOpenAIConfig, openAIKey, openAIModel)
	}
	localLogger.Warn("OpenAI API key not provided.")

	ollama := client.NewOllamaClient(
		client.OllamaConfig(config.Getenv(config.OllamaHostEnv, config.DefaultOllamaHost)),
		config.Getenv(config.OllamaModelEnv, config.DefaultOllamaModel),
	)
	probeCtx, cancel := context.WithTimeout(ctx, ollamaProbeTimeout)
	defer cancel()
	if ollama.Available(probeCtx) {
		localLogger.Info("Ollama client initialized, model ", ollama.Model())
		return ollama
	}

	localLogger.Warn("No chat upstream available, chat requests will fail until OPENAI_API_KEY is set")
	return client.NewOpenAIClient(client.DefaultOpenAIConfig, "", openAIModel)
}
