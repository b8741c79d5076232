package events

import (
	"context"
	"fmt"

	"digilist/pkg/kafka"
	"digilist/pkg/middleware"
	"digilist/pkg/model"
)

const (
	SchemaVersion = "1"
	Source        = "bookings"
)

// Publisher announces booking changes to the rest of the platform.
type Publisher interface {
	Publish(ctx context.Context, event model.BookingEvent) error
}

type producer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer producer
}

func NewKafkaPublisher(p *kafka.Producer) Publisher {
	return &kafkaPublisher{producer: p}
}

// Publish keys events by booking so every change to one booking lands on
// the same partition in order.
func (p *kafkaPublisher) Publish(ctx context.Context, event model.BookingEvent) error {
	msg, err := kafka.NewMessage().
		WithKey(event.BookingID).
		WithEventType(event.Type).
		WithCorrelationID(middleware.RequestIDFromContext(ctx)).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithValue(event).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", event.Type, err)
	}

	return p.producer.Publish(ctx, msg)
}

// NopPublisher drops every event. Used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.BookingEvent) error { return nil }
