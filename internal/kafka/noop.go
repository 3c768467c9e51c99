package kafka

import "bus-ticketing/internal/models"

// NoopProducer satisfies the publisher interface when Kafka is
// disabled (local development, tests).
type NoopProducer struct{}

func (NoopProducer) PublishOrderConfirmed(models.Order) error { return nil }
func (NoopProducer) PublishOrderCancelled(models.Order) error { return nil }
