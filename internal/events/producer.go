package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Producer publishes relationship events to a single Kafka topic.
// Publishing is asynchronous; delivery reports are consumed in the
// background and failures are logged, never surfaced to the mutation
// path that triggered them.
type Producer struct {
	producer *kafka.Producer
	config   *Config
	logger   *slog.Logger
}

// NewProducer creates a Kafka producer with idempotence enabled so that
// broker-side retries cannot duplicate events.
func NewProducer(config *Config, logger *slog.Logger) (*Producer, error) {
	cfgMap := &kafka.ConfigMap{
		"bootstrap.servers":                     config.Brokers,
		"enable.idempotence":                    config.EnableIdempotence,
		"acks":                                  config.Acks,
		"max.in.flight.requests.per.connection": 5,
	}

	p, err := kafka.NewProducer(cfgMap)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	producer := &Producer{
		producer: p,
		config:   config,
		logger:   logger,
	}

	go producer.handleDeliveryReports()

	logger.Info("kafka producer initialized",
		"brokers", config.Brokers,
		"topic", config.Topic)

	return producer, nil
}

// PublishFollowChanged publishes a follow state change. The message is
// keyed by follower so a consumer sees one user's follow activity in order.
func (p *Producer) PublishFollowChanged(event FollowChanged) error {
	return p.publish(event.FollowerID, "follow.changed", event)
}

// PublishBookmarkChanged publishes a bookmark state change, keyed by user.
func (p *Producer) PublishBookmarkChanged(event BookmarkChanged) error {
	return p.publish(event.UserID, "bookmark.changed", event)
}

type envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

func (p *Producer) publish(key, eventType string, payload any) error {
	data, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{
			Topic:     &p.config.Topic,
			Partition: kafka.PartitionAny,
		},
		Key:   []byte(key),
		Value: data,
	}

	if err := p.producer.Produce(msg, nil); err != nil {
		return fmt.Errorf("produce %s event: %w", eventType, err)
	}

	p.logger.Debug("event queued", "type", eventType, "key", key)
	return nil
}

func (p *Producer) handleDeliveryReports() {
	for e := range p.producer.Events() {
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			p.logger.Error("event delivery failed",
				"topic", *m.TopicPartition.Topic,
				"error", m.TopicPartition.Error)
		}
	}
}

// Flush waits up to timeoutMs for queued events to be delivered and
// returns how many are still outstanding.
func (p *Producer) Flush(timeoutMs int) int {
	remaining := p.producer.Flush(timeoutMs)
	if remaining > 0 {
		p.logger.Warn("unflushed events remain", "count", remaining)
	}
	return remaining
}

// Close flushes outstanding events and shuts the producer down.
func (p *Producer) Close() {
	if remaining := p.Flush(10000); remaining > 0 {
		p.logger.Error("events lost on shutdown", "count", remaining)
	}
	p.producer.Close()
}
