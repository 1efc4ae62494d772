// Package kafka streams audit entries to a Kafka topic for downstream
// consumers.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"fleetops/internal/core/domain/model/activity"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// AuditPublisher writes one message per audit entry, keyed by actor id.
type AuditPublisher struct {
	w     writer
	topic string
}

// NewAuditPublisher creates a publisher for topic on brokers.
func NewAuditPublisher(brokers []string, topic string) *AuditPublisher {
	return &AuditPublisher{
		w: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.Hash{},
		},
		topic: topic,
	}
}

func newAuditPublisherWithWriter(w writer, topic string) *AuditPublisher {
	return &AuditPublisher{w: w, topic: topic}
}

// auditMessage is the wire format, field names match the logs collection.
type auditMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Role      string    `json:"role"`
	Event     string    `json:"event"`
	Details   string    `json:"details"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Publish sends entry.
func (p *AuditPublisher) Publish(ctx context.Context, entry *activity.Entry) error {
	actor := entry.Actor()
	value, err := json.Marshal(auditMessage{
		ID:        entry.ID().String(),
		UserID:    actor.ID,
		UserEmail: actor.Email,
		Role:      actor.Role.String(),
		Event:     entry.Event(),
		Details:   entry.Details(),
		Status:    entry.Status(),
		Timestamp: entry.At().UTC(),
	})
	if err != nil {
		return errors.Wrap(err, "encode audit entry")
	}

	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   []byte(actor.ID),
		Value: value,
	}); err != nil {
		return errors.Wrap(err, "kafka publish")
	}
	return nil
}

// Close flushes pending writes.
func (p *AuditPublisher) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
