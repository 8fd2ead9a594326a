package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/carterror/nubex/internal/entity"
	"github.com/carterror/nubex/internal/messaging"
)

// Publisher writes JSON-encoded domain events to a Kafka topic, keyed by
// aggregate id so events for one order stay in order.
type Publisher struct {
	writer *kafkaGo.Writer
}

var _ messaging.Publisher = (*Publisher)(nil)

// NewPublisher creates a Publisher for a specific topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkaGo.Writer{
			Addr:     kafkaGo.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafkaGo.LeastBytes{},
		},
	}
}

func (p *Publisher) Publish(ctx context.Context, key string, event entity.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.EventType(), err)
	}

	return p.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: []kafkaGo.Header{
			{Key: "event-type", Value: []byte(event.EventType())},
		},
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
