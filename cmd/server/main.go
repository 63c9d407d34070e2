// Package main provides the course bot server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bakingstudio/course-linebot-go/internal/bot"
	"github.com/bakingstudio/course-linebot-go/internal/cards"
	"github.com/bakingstudio/course-linebot-go/internal/catalog"
	"github.com/bakingstudio/course-linebot-go/internal/config"
	"github.com/bakingstudio/course-linebot-go/internal/logger"
	"github.com/bakingstudio/course-linebot-go/internal/metrics"
	"github.com/bakingstudio/course-linebot-go/internal/ratelimit"
	"github.com/bakingstudio/course-linebot-go/internal/replier"
	"github.com/bakingstudio/course-linebot-go/internal/responder"
	"github.com/bakingstudio/course-linebot-go/internal/sentry"
	"github.com/bakingstudio/course-linebot-go/internal/webhook"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel)
	log.Info("Starting course bot server")

	// Initialize Sentry (no-op without a DSN)
	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: "production",
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	}

	// Create Prometheus registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	// Connect to the course store
	store, err := catalog.NewStore(context.Background(), cfg.Store, cfg.StoreTimeout, log, m)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to course store")
	}
	log.WithField("database", cfg.Store.Database).Info("Course store connected")

	// Outbound replier: real client when a channel token is configured,
	// a warning no-op otherwise
	var rep replier.Replier
	if cfg.HasChannelToken() {
		limiter := ratelimit.NewPerSecond(cfg.ReplyRateRPS)
		lineReplier, err := replier.NewLineReplier(cfg.LineChannelToken, limiter, log, m)
		if err != nil {
			log.WithError(err).Fatal("Failed to create LINE client")
		}
		rep = lineReplier
	} else {
		log.Warn("LINE_CHANNEL_ACCESS_TOKEN not set, running in degraded mode")
		rep = replier.NewNoopReplier(log)
	}

	// Wire the reply pipeline
	composer := cards.NewComposer(cfg.Features.ThemedCards)
	resp := responder.New(rep, log, m)
	router := bot.New(store, composer, resp, cfg.Features, log, m)
	webhookHandler := webhook.NewHandler(cfg.LineChannelSecret, router, log, m)
	log.WithFields(map[string]any{
		"themed_cards":    cfg.Features.ThemedCards,
		"fuzzy_search":    cfg.Features.FuzzySearch,
		"category_search": cfg.Features.CategorySearch,
		"quick_reply":     cfg.Features.QuickReply,
	}).Info("Webhook handler created")

	// Set Gin mode based on log level
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin engine
	engine := gin.New()
	engine.Use(gin.Recovery())
	if sentry.IsEnabled() {
		engine.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	engine.Use(securityHeadersMiddleware())
	engine.Use(loggingMiddleware(log))

	setupRoutes(engine, webhookHandler, store, registry)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	// Drain in-flight webhook events before closing anything they use
	if err := webhookHandler.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("Timed out waiting for webhook events to drain")
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	sentry.Flush(2 * time.Second)

	if err := store.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to disconnect from course store")
	}

	log.Info("Server stopped")
}
