package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/zhouzirui/moodchat/backend/internal/config"
	"github.com/zhouzirui/moodchat/backend/internal/handler"
	"github.com/zhouzirui/moodchat/backend/internal/logger"
	"github.com/zhouzirui/moodchat/backend/internal/model/resource"
	"github.com/zhouzirui/moodchat/backend/internal/service/ai"
	"github.com/zhouzirui/moodchat/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.Root()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn("failed to load .env file, continuing with system environment variables only", "err", err)
	}

	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrCredentialMissing) {
			log.Fatal("LLM 凭证未配置，请设置 LLM_API_KEY 或 GOOGLE_AI_API_KEY", "err", err)
		}
		log.Fatal("failed to load configuration", "err", err)
	}

	logger.Configure(cfg.Log.Level, os.Stderr)
	log = logger.Root()

	resources, err := resource.Open(cfg.Crisis.ResourcesFile)
	if err != nil {
		log.Fatal("failed to load crisis resources", "err", err)
	}

	generator, err := ai.NewGeneratorFromConfig(ctx, cfg.AI)
	if err != nil {
		log.Fatal("failed to initialize reply generator", "err", err)
	}
	log.Info("reply generator ready", "provider", cfg.AI.Provider, "model", cfg.AI.Model)

	chatService := chat.NewService(chat.NewOrchestrator(generator))
	router, err := handler.NewRouter(chatService, resources, cfg.Crisis.Locale)
	if err != nil {
		log.Fatal("failed to build router", "err", err)
	}

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Root().Info("moodchat backend listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		logger.Root().Fatal("server error", "err", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
