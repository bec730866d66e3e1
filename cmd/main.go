package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobora/chat-service/config"
	"github.com/jobora/chat-service/internal/postgres"
	"github.com/jobora/chat-service/internal/security"
	"github.com/jobora/chat-service/internal/service"
	httpx "github.com/jobora/chat-service/internal/transport/http"
	"github.com/jobora/chat-service/internal/transport/ws"
	"github.com/jobora/chat-service/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting chat-service",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	// --- repos ---
	msgRepo := postgres.NewMessageRepository(db.Pool)
	userRepo := postgres.NewUserRepository(db.Pool)

	// --- services ---
	chatSvc := service.NewChatService(msgRepo, cfg.Chat.MessageMaxLen)
	userSvc := service.NewUserService(userRepo)
	signer := security.NewChatTokenSigner([]byte(cfg.Chat.TokenSecret), cfg.Logging.Service, cfg.Chat.TokenTTLDuration())

	// --- WS Hub, Directory & Server ---
	hub := ws.NewHub()
	directory := ws.NewDirectory()
	wsServer := ws.NewServer(hub, directory, signer, userSvc, chatSvc)

	// --- HTTP ---
	handler := httpx.NewHandler(chatSvc, signer)
	router := httpx.NewRouter(handler, wsServer, cfg.Chat.AllowedOrigins)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
