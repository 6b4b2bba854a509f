package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jselabs/leaserisk/config"
	"github.com/jselabs/leaserisk/internal/handlers"
	"github.com/jselabs/leaserisk/internal/middleware"
	"github.com/jselabs/leaserisk/internal/narrative"
	"github.com/jselabs/leaserisk/internal/refdata"
	"github.com/jselabs/leaserisk/internal/scoring"
	"github.com/jselabs/leaserisk/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Build the reference data store; sub-loads degrade individually, never fatal
	store := refdata.Load(cfg.DataDir)

	// Load the pretrained classifier. A load failure is not fatal: the server
	// still starts for health checks, but every prediction is rejected as
	// unavailable.
	model, err := scoring.LoadModel(cfg.ModelPath)
	if err != nil {
		log.Printf("Risk model unavailable, predictions will be rejected: %v", err)
		model = nil
	} else {
		log.Printf("Loaded risk model with %d features", len(model.Features()))
	}

	// Initialize narrative client
	narrator := narrative.NewClient(cfg.NarrativeURL)

	// Initialize services
	predictionSvc := services.NewPredictionService(store, model, narrator)

	// Initialize handlers
	predictionHandler := handlers.NewPredictionHandler(predictionSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prediction route
	router.POST("/predict_and_explain", predictionHandler.PredictAndExplain)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
