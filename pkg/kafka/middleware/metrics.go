package kafka_middleware

import (
	"context"

	"campusmove/pkg/kafka"
	"campusmove/pkg/metrics"
)

// MetricsProducerMiddleware counts publishes per topic and result.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		err := next(ctx, msg)
		metrics.RecordEventPublish(msg.Topic, err)
		return err
	}
}
