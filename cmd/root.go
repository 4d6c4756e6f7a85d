package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bz888/nopickles/internal/api"
	"github.com/bz888/nopickles/internal/api/server"
	"github.com/bz888/nopickles/internal/config"
	"github.com/bz888/nopickles/internal/logger"
	"github.com/bz888/nopickles/internal/menu"
	"github.com/bz888/nopickles/internal/ui"
)

const shutdownTimeout = 5 * time.Second

func init() {
	config.Init()
}

func Execute() {
	if config.Serve {
		serve()
		return
	}

	view := ui.New(config.Dev)
	if err := logger.InitLogger(config.Dev, config.LogPath, view.DebugConsole()); err != nil {
		log.Fatal(err)
	}
	defer logger.Close()
	localLogger := logger.NewLogger("main")

	var srv *server.Server
	if config.Remote == "" {
		var err error
		srv, err = startServer()
		if err != nil {
			localLogger.Fatal(err)
		}
	}

	client, err := api.NewClient(config.ServerURL())
	if err != nil {
		localLogger.Fatal(err)
	}
	view.Attach(client)

	if err := view.Run(); err != nil {
		localLogger.Error("UI stopped: ", err)
	}

	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			localLogger.Error("Server shutdown: ", err)
		}
	}
	log.Println("Shutting down gracefully.")
}

func startServer() (*server.Server, error) {
	chatClient := server.InitializeClient(context.Background())
	return server.Start(config.Addr, server.NewRouter(chatClient, menu.Default()))
}

// serve runs the chat server alone until SIGINT or SIGTERM.
func serve() {
	if err := logger.InitLogger(true, config.LogPath, nil); err != nil {
		log.Fatal(err)
	}
	defer logger.Close()
	localLogger := logger.NewLogger("main")

	srv, err := startServer()
	if err != nil {
		localLogger.Fatal(err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		localLogger.Error("Server shutdown: ", err)
	}
}
