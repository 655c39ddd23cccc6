package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sburdges-eng/lariat-bible-sub000/config"
	httpDelivery "github.com/sburdges-eng/lariat-bible-sub000/internal/delivery/http"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/infrastructure/catalog"
	"github.com/sburdges-eng/lariat-bible-sub000/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting lariat costing service",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
	)

	// Initialize infrastructure dependencies
	store := catalog.NewMemoryStore()

	// Initialize usecase layer
	parser := usecase.NewPackSizeParser()
	converter := usecase.NewUnitConverter()
	prices := usecase.NewPriceNormalizer(converter)
	normalizer := usecase.NewProductNormalizer()

	matcher := usecase.NewMatchingService(usecase.MatchConfig{
		MinConfidence:   cfg.Matching.MinConfidence,
		HighThreshold:   cfg.Matching.HighThreshold,
		MediumThreshold: cfg.Matching.MediumThreshold,
		LowThreshold:    cfg.Matching.LowThreshold,
	})

	importer := usecase.NewImportService(parser, normalizer, prices, store, logger)
	comparator := usecase.NewComparisonService(matcher, converter, store, store, store)
	costing := usecase.NewCostingService(store, store, converter, usecase.CostingConfig{
		DefaultFoodCostPct: decimal.NewFromFloat(cfg.Costing.DefaultFoodCostPct),
	})

	logger.Info("matching configured",
		zap.Float64("min_confidence", cfg.Matching.MinConfidence),
		zap.Float64("high_threshold", cfg.Matching.HighThreshold),
		zap.Float64("medium_threshold", cfg.Matching.MediumThreshold),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(importer, comparator, costing, store)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
