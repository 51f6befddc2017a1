package main

import (
	"context"
	"fmt"
	"log"

	"research-publisher/internal/publisher/adapter/persistence/mongodb"
	"research-publisher/internal/publisher/config"
	"research-publisher/internal/publisher/usecase"
	"research-publisher/internal/shared/logger"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	fmt.Println("🚀 Research Publisher - Starting upload...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Configuration loaded successfully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			appLogger.Errorf("Failed to disconnect MongoDB: %v", err)
		}
	}()

	if err := mongoClient.Ping(ctx, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	appLogger.Infof("MongoDB connection established (database: %s)", cfg.DatabaseName)

	store := mongodb.NewDocumentStore(mongoClient.Database(cfg.DatabaseName), appLogger)
	publisher := usecase.NewPublisherUsecase(store, cfg, appLogger)

	result, err := publisher.Publish(context.Background())
	if err != nil {
		log.Fatalf("Publish failed: %v", err)
	}

	fmt.Println("\n=== Upload Complete ===")
	fmt.Printf("Destination path: %s\n", result.RootPath)
	fmt.Printf("Documents written: %d\n", result.DocumentsWritten)
	fmt.Printf("Total tiers: %d\n", result.TierCount)
	fmt.Printf("Research version: %s\n", result.VersionID)
	fmt.Printf("Status: %s\n", result.Status)
}
