package events

import (
	"context"
	"fmt"

	"campusmove/pkg/kafka"
	"campusmove/pkg/model"
)

const (
	EventRentalCreated = "rental.created"
	schemaVersion      = "1"
	source             = "transit"
)

type Publisher interface {
	PublishRentalCreated(ctx context.Context, evt model.RentalCreated, correlationID string) error
}

// MessagePublisher is the part of *kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(producer MessagePublisher) Publisher {
	return &kafkaPublisher{producer: producer}
}

func (p *kafkaPublisher) PublishRentalCreated(ctx context.Context, evt model.RentalCreated, correlationID string) error {
	msg, err := kafka.NewMessage().
		WithKey(evt.RentalID).
		WithValue(evt).
		WithEventType(EventRentalCreated).
		WithSchemaVersion(schemaVersion).
		WithSource(source).
		WithCorrelationID(correlationID).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", EventRentalCreated, err)
	}
	return p.producer.Publish(ctx, msg)
}

type noopPublisher struct{}

// NewNoopPublisher is used when no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishRentalCreated(context.Context, model.RentalCreated, string) error {
	return nil
}
