package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/payflow-labs/payflow/internal/domain/entity"
	coreport "github.com/payflow-labs/payflow/internal/domain/port/core"
	messagingport "github.com/payflow-labs/payflow/internal/domain/port/messaging"
)

// Config represents Kafka producer configuration
type Config struct {
	Brokers      string        `mapstructure:"kafka_brokers"`
	Topic        string        `mapstructure:"kafka_topic"`
	WriteTimeout time.Duration `mapstructure:"kafka_write_timeout"`
}

// transferCompletedEvent is the wire shape of a transfer.completed event
type transferCompletedEvent struct {
	EventType   string    `json:"event_type"`
	TransferID  string    `json:"transfer_id"`
	SenderID    uint64    `json:"sender_id"`
	ReceiverID  uint64    `json:"receiver_id"`
	AmountCents int64     `json:"amount_cents"`
	Visibility  string    `json:"visibility"`
	CreatedAt   time.Time `json:"created_at"`
}

// KafkaProducer publishes domain events for downstream consumers
type KafkaProducer struct {
	writer *kafka.Writer
	logger coreport.Logger
}

// NewKafkaProducer creates a producer for the transfer events topic
func NewKafkaProducer(cfg Config, logger coreport.Logger) (*KafkaProducer, error) {
	if cfg.Topic == "" {
		return nil, fmt.Errorf("kafka topic is not configured")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &KafkaProducer{writer: writer, logger: logger}, nil
}

var _ messagingport.EventPublisher = (*KafkaProducer)(nil)

// PublishTransferCompleted emits a transfer.completed event keyed by sender
// so one sender's events stay ordered within a partition
func (p *KafkaProducer) PublishTransferCompleted(ctx context.Context, transfer *entity.Transfer) error {
	event := transferCompletedEvent{
		EventType:   "transfer.completed",
		TransferID:  transfer.ID,
		SenderID:    transfer.SenderID,
		ReceiverID:  transfer.ReceiverID,
		AmountCents: transfer.AmountCents,
		Visibility:  string(transfer.Visibility),
		CreatedAt:   transfer.CreatedAt,
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal transfer event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("%d", transfer.SenderID)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish transfer event: %w", err)
	}

	p.logger.Debug("Published transfer event", map[string]any{
		"transfer_id": transfer.ID,
	})
	return nil
}

// Close flushes and closes the underlying writer
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
