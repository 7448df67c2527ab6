package consumer

import (
	"context"
	"encoding/json"

	"github.com/Sportinger/argus/internal/database/kafka"
	"github.com/Sportinger/argus/internal/ingestion/service"
	"github.com/Sportinger/argus/internal/models"
	"github.com/Sportinger/argus/pkg/logger"
	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaConsumer consumes raw documents from the document topic and feeds
// them through the IngestionService. One bad message is logged and skipped;
// the loop never stops for a single document.
type KafkaConsumer struct {
	kafkaClient      *kafka.KafkaClient
	ingestionService *service.IngestionService
	logger           *logger.Logger
}

// NewKafkaConsumer creates a new KafkaConsumer.
func NewKafkaConsumer(kafkaClient *kafka.KafkaClient, ingestionService *service.IngestionService, logger *logger.Logger) *KafkaConsumer {
	return &KafkaConsumer{
		kafkaClient:      kafkaClient,
		ingestionService: ingestionService,
		logger:           logger,
	}
}

// Start starts the consume loop in a goroutine. It runs until the context
// is cancelled.
func (c *KafkaConsumer) Start(ctx context.Context) {
	go func() {
		for {
			msg, err := c.kafkaClient.Reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.logger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to fetch message")
				continue
			}

			msgLogger := c.logger.WithTraceID(uuid.New().String())

			var doc models.RawDocument
			if err := json.Unmarshal(msg.Value, &doc); err != nil {
				msgLogger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to unmarshal document")
				c.commit(ctx, msgLogger, msg)
				continue
			}

			report, err := c.ingestionService.IngestDocument(ctx, &doc)
			if err != nil {
				msgLogger.WithError(models.ErrorInfo{Message: err.Error()}).
					WithPayload(map[string]interface{}{"source": doc.Source, "url": doc.URL}).
					Error("failed to ingest document")
				continue
			}

			if report.Skipped {
				msgLogger.WithPayload(map[string]interface{}{"source": doc.Source, "url": doc.URL}).
					Debug("document already ingested, skipping")
			} else {
				msgLogger.WithPayload(map[string]interface{}{
					"raw_source":    report.RawSource,
					"entities":      report.Entities,
					"relationships": report.Relationships,
					"failed":        report.Failed,
					"dangling":      report.Dangling,
				}).Info("document ingested")
			}

			c.commit(ctx, msgLogger, msg)
		}
	}()
}

func (c *KafkaConsumer) commit(ctx context.Context, msgLogger *logger.Logger, msg kafkago.Message) {
	if err := c.kafkaClient.Reader.CommitMessages(ctx, msg); err != nil {
		msgLogger.WithError(models.ErrorInfo{Message: err.Error()}).Error("failed to commit message")
	}
}
