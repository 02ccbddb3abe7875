package events

import (
	"fmt"
	"os"
	"strings"
)

// Config holds Kafka configuration for relationship event publishing.
type Config struct {
	Brokers           string
	Topic             string
	EnableIdempotence bool
	Acks              string
}

// LoadConfig reads Kafka configuration from environment variables.
// KAFKA_BROKERS is required; services run without event publishing when
// it is absent.
func LoadConfig() (*Config, error) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}

	topic := os.Getenv("KAFKA_TOPIC_RELATIONSHIP_EVENTS")
	if topic == "" {
		topic = "relationship-events"
	}

	return &Config{
		Brokers:           brokers,
		Topic:             topic,
		EnableIdempotence: true,
		Acks:              "all",
	}, nil
}

// BrokerList returns the brokers as a slice.
func (c *Config) BrokerList() []string {
	return strings.Split(c.Brokers, ",")
}
