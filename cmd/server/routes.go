// Package main provides the course bot server entry point.
package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bakingstudio/course-linebot-go/internal/catalog"
	"github.com/bakingstudio/course-linebot-go/internal/webhook"
)

// setupRoutes configures all HTTP routes
func setupRoutes(engine *gin.Engine, webhookHandler *webhook.Handler, store *catalog.Store, registry *prometheus.Registry) {
	// Root endpoint - plain liveness text
	rootHandler := func(c *gin.Context) {
		c.String(http.StatusOK, "Course bot backend is running.")
	}
	engine.GET("/", rootHandler)
	engine.HEAD("/", rootHandler)

	// Liveness probe - never checks dependencies
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	engine.GET("/healthz", healthHandler)
	engine.HEAD("/healthz", healthHandler)

	// Readiness probe - checks the course store
	readyHandler := func(c *gin.Context) {
		if err := store.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		courses := store.FetchActive(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":  "ready",
			"store":   "connected",
			"courses": len(courses),
		})
	}
	engine.GET("/ready", readyHandler)
	engine.HEAD("/ready", readyHandler)

	// LINE webhook callback endpoint
	engine.POST("/webhook", webhookHandler.Handle)

	// Diagnostic view of the active catalog
	engine.GET("/courses", func(c *gin.Context) {
		c.JSON(http.StatusOK, store.FetchActive(c.Request.Context()))
	})

	// Prometheus metrics endpoint
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
}
