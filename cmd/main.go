// Package main provides the entry point for the tubegrab Telegram bot: a
// webhook-driven service that turns YouTube links into quality menus and
// delivers the selected download back into the chat.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tubegrab/tubegrab/internal/api/handlers"
	"github.com/tubegrab/tubegrab/internal/api/router"
	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/services/bot"
	"github.com/tubegrab/tubegrab/internal/services/downloader"
	"github.com/tubegrab/tubegrab/internal/services/extractor"
	"github.com/tubegrab/tubegrab/internal/services/session"
	"github.com/tubegrab/tubegrab/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting tubegrab bot service")

	if err := extractor.CheckBinaries(); err != nil {
		logger.Warnf("Extraction toolchain check failed: %v", err)
		logger.Info("Downloads will fail until yt-dlp and ffmpeg are installed")
	}

	// Initialize session store (redis when configured, bounded memory otherwise)
	sessions := session.NewStore(cfg)

	// Initialize extraction backend and download orchestrator
	ext := extractor.NewClient(cfg.Download.FetchTimeout)
	orchestrator, err := downloader.NewOrchestrator(ext, &cfg.Download)
	if err != nil {
		logger.Fatalf("Failed to initialize orchestrator: %v", err)
	}
	orchestrator.SweepScratch(context.Background())

	// Initialize Telegram gateway
	gateway, err := bot.NewTelegramGateway(cfg.Telegram.BotToken)
	if err != nil {
		logger.Fatalf("Failed to initialize Telegram gateway: %v", err)
	}
	logger.Infof("Connected as bot: @%s", gateway.Username())

	// Initialize update handler
	botHandler := bot.NewHandler(gateway, ext, sessions, orchestrator)

	// Initialize HTTP handlers and router
	webhookHandler := handlers.NewWebhookHandler(botHandler, cfg.Telegram.BotToken)
	healthHandler := handlers.NewHealthHandler(sessions, &cfg.Download)
	r := router.NewRouter(cfg, webhookHandler, healthHandler)

	// Register webhook with Telegram
	if err := gateway.RegisterWebhook(context.Background(), cfg.WebhookURL()); err != nil {
		logger.Fatalf("Failed to register webhook: %v", err)
	}
	logger.Infof("Webhook registered at %s%s", cfg.Telegram.ExternalURL, "/webhook/<token>")

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := gateway.DeleteWebhook(ctx); err != nil {
		logger.Errorf("Failed to delete webhook: %v", err)
	}

	if err := sessions.Close(); err != nil {
		logger.Errorf("Failed to close session store: %v", err)
	}

	logger.Info("Server shutdown complete")
}
