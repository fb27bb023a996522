package main

import (
	"amazon-analytics/internal/ai"
	"amazon-analytics/internal/amazon"
	"amazon-analytics/internal/analytics"
	"amazon-analytics/internal/api"
	"amazon-analytics/internal/db"
	"amazon-analytics/internal/ingest"
	"amazon-analytics/internal/reconcile"
	"amazon-analytics/internal/store"
	"amazon-analytics/pkg/config"
	"amazon-analytics/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Initialize dependencies
	dbConn := db.Setup(cfg.Database)
	repo := store.New(dbConn)

	marketplace := amazon.NewClient(cfg)
	reconciler := reconcile.NewService(repo, marketplace)
	aggregator := analytics.NewService(repo)
	insights := ai.NewService(cfg)

	// Optional analytics event ingestion
	if len(cfg.KafkaBrokers) > 0 {
		ingest.Start(cfg.KafkaBrokers, cfg.KafkaAnalyticsTopic, repo)
	}

	server := api.New(cfg.ServerPort, repo, reconciler, marketplace, aggregator, insights)
	if err := server.Start(); err != nil {
		logrus.Fatalf("API server failed: %v", err)
	}
}
