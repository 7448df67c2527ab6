package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sportinger/argus/internal/database/kafka"
	"github.com/Sportinger/argus/internal/models"
	kafkago "github.com/segmentio/kafka-go"
)

// KafkaPublisher publishes collected raw documents onto the document topic.
type KafkaPublisher struct {
	kafkaClient *kafka.KafkaClient
}

// NewKafkaPublisher creates a new KafkaPublisher.
func NewKafkaPublisher(kafkaClient *kafka.KafkaClient) *KafkaPublisher {
	return &KafkaPublisher{kafkaClient: kafkaClient}
}

// Publish JSON-marshals every document into one Kafka message, keyed by the
// producing source so one source's documents stay ordered per partition.
func (p *KafkaPublisher) Publish(ctx context.Context, docs []models.RawDocument) error {
	if len(docs) == 0 {
		return nil
	}

	messages := make([]kafkago.Message, 0, len(docs))
	for i := range docs {
		value, err := json.Marshal(&docs[i])
		if err != nil {
			return fmt.Errorf("failed to marshal document: %w", err)
		}
		messages = append(messages, kafkago.Message{
			Key:   []byte(docs[i].Source),
			Value: value,
		})
	}

	if err := p.kafkaClient.Writer.WriteMessages(ctx, messages...); err != nil {
		return fmt.Errorf("failed to write documents to kafka: %w", err)
	}
	return nil
}
