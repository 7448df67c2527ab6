package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/database/kafka"
	"github.com/Sportinger/argus/internal/database/neo4j"
	"github.com/Sportinger/argus/internal/database/redis"
	"github.com/Sportinger/argus/internal/extraction"
	"github.com/Sportinger/argus/internal/ingestion/consumer"
	"github.com/Sportinger/argus/internal/ingestion/service"
	"github.com/Sportinger/argus/internal/ingestion/store"
	"github.com/Sportinger/argus/internal/llm"
	"github.com/Sportinger/argus/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	// Initialize logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New("ingestion_service", uuid.New().String())

	// Initialize database clients
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	neo4jClient, err := neo4j.GetClient(ctx, &cfg.Databases.Neo4j)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer neo4jClient.Close(ctx)

	redisClient, err := redis.GetClient(&cfg.Databases.Redis)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer redis.Close()

	kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer kafkaClient.Close()

	// Initialize the LLM client and the extractor
	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	graphExtractor := extraction.NewGraphExtractor(llmClient)

	// Initialize stores
	graphStore := store.NewNeo4jStore(neo4jClient)
	seenStore := store.NewRedisSeenStore(redisClient, time.Duration(cfg.Databases.Redis.SeenTTL)*time.Second)

	// Initialize ingestion service
	ingestionService := service.NewIngestionService(graphExtractor, graphStore, seenStore, appLogger)

	// Initialize and start Kafka consumer
	kafkaConsumer := consumer.NewKafkaConsumer(kafkaClient, ingestionService, appLogger)
	kafkaConsumer.Start(ctx)

	appLogger.Info("Ingestion service started")

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	cancel()

	appLogger.Info("Ingestion service stopped")
}
