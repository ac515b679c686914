package main

import (
	"log"
	"os"
	"time"

	"consumption-sim/internal/api/handlers"
	"consumption-sim/internal/api/middleware"
	"consumption-sim/internal/config"
	"consumption-sim/internal/data"
	"consumption-sim/internal/model"

	"github.com/gin-gonic/gin"
)

func main() {
	// Get configuration from environment
	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	// Baseline calibration: defaults, optionally overridden by a YAML file.
	base := model.DefaultParams()
	if cfgPath := os.Getenv("CONSUMER_CONFIG"); cfgPath != "" {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			log.Fatalf("failed to load %s: %v", cfgPath, err)
		}
		base = cfg.ToModelParams()
		log.Printf("Loaded baseline calibration from %s", cfgPath)
	}

	// Solved rules are cached across requests; identical (params, belief)
	// pairs skip the solve.
	cache := data.NewRuleCache(1 * time.Hour)

	// Set up Gin router
	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply middleware
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	// Initialize handlers
	experimentHandler := handlers.NewExperimentHandler(base, cache)
	presetHandler := handlers.NewPresetHandler()

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/experiment", experimentHandler.RunExperiment)
		v1.POST("/experiment/sweep", experimentHandler.RunSweep)
		v1.GET("/presets", presetHandler.ListPresets)
	}

	log.Printf("Listening on :%s (presets: %s)", port, presetHandler.GetPresetsPath())
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
