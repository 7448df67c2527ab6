package main

import (
	"context"
	"log"
	"os"

	"github.com/Sportinger/argus/internal/agent"
	"github.com/Sportinger/argus/internal/config"
	"github.com/Sportinger/argus/internal/database/kafka"
	"github.com/Sportinger/argus/internal/ingestion/publisher"
	"github.com/Sportinger/argus/internal/ingestion/service"
	httpclient "github.com/Sportinger/argus/pkg/http"
	"github.com/Sportinger/argus/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// The collector runs exactly one fetch pass over the configured agents and
// publishes everything it collected. Running it on a cadence is the
// operator's business, not this binary's.
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
	appLogger := logger.New("collector_service", uuid.New().String())

	ctx := context.Background()

	// Initialize Kafka client
	kafkaClient, err := kafka.GetClient(&cfg.Databases.Kafka)
	if err != nil {
		appLogger.Fatal(err.Error())
	}
	defer kafkaClient.Close()

	// Shared outbound HTTP client with circuit breaker and rate limiter
	client, err := httpclient.NewClient(cfg.Middleware)
	if err != nil {
		appLogger.Fatal(err.Error())
	}

	// Build and register the enabled agents
	registry := agent.NewLocalRegistry()
	for _, agentCfg := range cfg.Agents {
		if !agentCfg.Enabled {
			continue
		}
		a, err := agent.New(agentCfg, client)
		if err != nil {
			appLogger.WithAgent(agentCfg.Name).Warn(err.Error())
			continue
		}
		registry.Register(a)
	}
	if len(registry.ListAgents()) == 0 {
		appLogger.Fatal("no agents enabled, nothing to collect")
	}

	// Report source liveness before fetching
	for _, status := range registry.Statuses(ctx) {
		appLogger.WithAgent(status.Name).
			WithPayload(map[string]interface{}{"healthy": status.Healthy}).
			Info("agent health")
	}

	// One collection pass
	collector := service.NewCollector(registry, publisher.NewKafkaPublisher(kafkaClient), appLogger)
	stats := collector.Run(ctx)

	failed := false
	for _, stat := range stats {
		if stat.Error != "" {
			failed = true
		}
	}

	appLogger.Info("collection pass complete")
	if failed {
		os.Exit(1)
	}
}
