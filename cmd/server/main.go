package main

import (
	"fmt"
	"log"
	"os"

	"github.com/basketbridge/backend/config"
	httpDelivery "github.com/basketbridge/backend/internal/delivery/http"
	"github.com/basketbridge/backend/internal/domain"
	"github.com/basketbridge/backend/internal/infrastructure/appie"
	"github.com/basketbridge/backend/internal/infrastructure/cache"
	"github.com/basketbridge/backend/internal/infrastructure/picnic"
	"github.com/basketbridge/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting BasketBridge Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Match cache: %s (TTL %d days)", cfg.Cache.File, cfg.Cache.TTLDays)

	// Initialize infrastructure dependencies
	ahClient := appie.NewClient(cfg.AH.BaseURL, cfg.AH.Token)
	picnicClient := picnic.NewClient(cfg.Picnic.BaseURL, cfg.Picnic.Token)
	cacheStore := cache.NewFileStore(cfg.Cache.File)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		ahClient.SetDebug(true)
		picnicClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	log.Printf("AH gateway: %s", cfg.AH.BaseURL)
	log.Printf("Picnic gateway: %s", cfg.Picnic.BaseURL)

	catalogs := []domain.Catalog{ahClient, picnicClient}
	carts := []domain.CartClient{ahClient, picnicClient}

	// Initialize usecase layer
	matcher := usecase.NewMatcherService(catalogs, cacheStore, usecase.MatcherConfig{
		Settings:           cfg.MatchSettings(),
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
	})
	cartService := usecase.NewCartService(carts)
	checkoutService := usecase.NewCheckoutService(ahClient, picnicClient, cfg.Checkout.PicnicPriceUnit)

	log.Printf("Matching: accept=%.0f gap=%.0f limit=%d bonus_tiebreak=%v",
		cfg.Matching.AutoAcceptScore,
		cfg.Matching.MinScoreGap,
		cfg.Matching.SearchLimit,
		cfg.Matching.PreferBonusTiebreak)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(matcher, cartService, checkoutService, catalogs)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
