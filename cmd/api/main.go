package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"voiceqa/internal/config"
	"voiceqa/internal/domains/qa"
	"voiceqa/internal/domains/session"
	"voiceqa/internal/handlers"
	"voiceqa/internal/server"
	"voiceqa/pkg/Logger"
	llmgroq "voiceqa/pkg/assistant/groq"
	sttgroq "voiceqa/pkg/io/stt/groq"
	"voiceqa/pkg/io/tts/gtts"
)

// Entry point for the Voice Audio Q&A API server.
// Loads configuration, wires the collaborators and serves until signalled.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := Logger.New(cfg.Debug)
	logger.Info("Logger initialized")

	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}

	// session context store: redis when configured, in-memory otherwise
	var store session.Store
	if cfg.Redis.Addr != "" {
		store, err = session.NewRedisStore(cfg.Redis, cfg.SessionTTL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		logger.Infof("Session store: redis at %s", cfg.Redis.Addr)
	} else {
		store = session.NewMemoryStore(cfg.SessionTTL)
		logger.Info("Session store: in-memory")
	}
	defer store.Close()

	qaService := qa.New(
		qa.Config{
			UploadDir: cfg.UploadDir,
			OutputDir: cfg.OutputDir,
		},
		store,
		sttgroq.New(cfg.GroqAPIKey, logger),
		llmgroq.New(cfg.GroqAPIKey, logger),
		gtts.New(),
		logger,
	)

	// compose router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	dep := server.NewServerDependencies(
		handlers.NewQAHandler(qaService, logger),
	)
	server.InitializeRoutes(router, dep)

	// listen with graceful exit
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Handler(),
	}
	go func() {
		logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server exiting %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// 5 secs then cancel
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Shutdown err %v", err)
	}
	logger.Info("Shutdown system")
}
