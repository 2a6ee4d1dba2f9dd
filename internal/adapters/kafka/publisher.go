package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"eventlottery/internal/domain"
)

// DefaultDrawTopic receives one message per committed draw.
const DefaultDrawTopic = "lottery.draw_completed"

// NewSyncProducer builds a sarama SyncProducer with acknowledged, retried sends.
func NewSyncProducer(brokers []string) (sarama.SyncProducer, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true
	cfg.Producer.Return.Errors = true
	cfg.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return producer, nil
}

// Publisher implements domain.DrawPublisher on a sarama SyncProducer.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewPublisher returns a Publisher writing to topic, or DefaultDrawTopic when empty.
func NewPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *Publisher {
	if topic == "" {
		topic = DefaultDrawTopic
	}
	return &Publisher{producer: producer, topic: topic, logger: logger}
}

// PublishDraw sends the draw keyed by event id so one event's draws stay ordered.
func (p *Publisher) PublishDraw(ctx context.Context, event domain.DrawEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal draw event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.EventID),
		Value: sarama.ByteEncoder(value),
		Headers: []sarama.RecordHeader{
			{Key: []byte("kind"), Value: []byte(event.Kind)},
			{Key: []byte("timestamp"), Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("send draw event: %w", err)
	}
	p.logger.DebugContext(ctx, "draw event published",
		"topic", p.topic, "event_id", event.EventID, "partition", partition, "offset", offset)
	return nil
}

// Close closes the underlying producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a DrawPublisher that drops every event.
func NewNoopPublisher() domain.DrawPublisher {
	return noopPublisher{}
}

func (noopPublisher) PublishDraw(context.Context, domain.DrawEvent) error { return nil }
