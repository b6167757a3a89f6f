package repo

import (
	"context"
	"fmt"

	"ledger/config"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Kafka publishes ledger events.
type Kafka interface {
	Publish(ctx context.Context, key, value string) error
	Close() error
}

type KafkaWriter struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaWriter returns a no-op publisher when no broker is configured.
func NewKafkaWriter(config *config.Config, log *zap.Logger) Kafka {
	if config.Kafka.Broker == "" {
		log.Info("kafka disabled: no broker configured")
		return NopKafka{}
	}
	w := &kafka.Writer{
		Addr:                   kafka.TCP(config.Kafka.Broker),
		Topic:                  config.Kafka.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &KafkaWriter{writer: w, log: log.Named("kafka")}
}

// Publish keys messages by account so one account's events stay ordered on a partition.
func (kw *KafkaWriter) Publish(ctx context.Context, key, value string) error {
	err := kw.writer.WriteMessages(ctx,
		kafka.Message{
			Key:   []byte(key),
			Value: []byte(value),
		},
	)
	if err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	kw.log.Debug("published event", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (kw *KafkaWriter) Close() error {
	return kw.writer.Close()
}

type NopKafka struct{}

func (NopKafka) Publish(context.Context, string, string) error { return nil }
func (NopKafka) Close() error { return nil }
