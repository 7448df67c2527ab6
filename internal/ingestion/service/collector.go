package service

import (
	"context"

	"github.com/Sportinger/argus/internal/agent"
	"github.com/Sportinger/argus/internal/models"
	"github.com/Sportinger/argus/pkg/logger"
)

// DocumentPublisher hands collected documents to the transport feeding the
// ingestion side.
type DocumentPublisher interface {
	Publish(ctx context.Context, docs []models.RawDocument) error
}

// CollectStats summarizes one collection pass over a single agent.
type CollectStats struct {
	Agent     string `json:"agent"`
	Documents int    `json:"documents"`
	Error     string `json:"error,omitempty"`
}

// Collector runs one fetch pass over every registered agent and publishes
// the result. One failing agent never aborts the pass for the others.
type Collector struct {
	registry  *agent.LocalRegistry
	publisher DocumentPublisher
	logger    *logger.Logger
}

// NewCollector creates a new Collector.
func NewCollector(registry *agent.LocalRegistry, publisher DocumentPublisher, logger *logger.Logger) *Collector {
	return &Collector{
		registry:  registry,
		publisher: publisher,
		logger:    logger,
	}
}

// Run fetches from all agents in registration order and publishes every
// collected document. It returns per-agent statistics.
func (c *Collector) Run(ctx context.Context) []CollectStats {
	agents := c.registry.ListAgents()
	stats := make([]CollectStats, 0, len(agents))

	for _, a := range agents {
		agentLogger := c.logger.WithAgent(a.Name())
		stat := CollectStats{Agent: a.Name()}

		docs, err := a.Fetch(ctx)
		if err != nil {
			stat.Error = err.Error()
			agentLogger.WithError(models.ErrorInfo{Message: err.Error(), Type: "agent_error"}).
				Error("fetch failed")
			stats = append(stats, stat)
			continue
		}

		if err := c.publisher.Publish(ctx, docs); err != nil {
			stat.Error = err.Error()
			agentLogger.WithError(models.ErrorInfo{Message: err.Error(), Type: "publish_error"}).
				Error("failed to publish documents")
			stats = append(stats, stat)
			continue
		}

		stat.Documents = len(docs)
		agentLogger.WithPayload(map[string]interface{}{"documents": len(docs)}).
			Info("collection pass finished")
		stats = append(stats, stat)
	}

	return stats
}
