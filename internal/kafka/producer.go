package kafka

import (
	"context"
	"encoding/json"

	"bus-ticketing/internal/models"

	"github.com/segmentio/kafka-go"
)

// Producer streams booking lifecycle events. One writer per topic,
// keyed by order ID so an order's events stay in sequence.
type Producer struct {
	confirmed *kafka.Writer
	cancelled *kafka.Writer
}

func NewProducer(brokers []string, confirmedTopic, cancelledTopic string) *Producer {
	return &Producer{
		confirmed: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   confirmedTopic,
		}),
		cancelled: kafka.NewWriter(kafka.WriterConfig{
			Brokers: brokers,
			Topic:   cancelledTopic,
		}),
	}
}

func (p *Producer) PublishOrderConfirmed(order models.Order) error {
	return p.publish(p.confirmed, order)
}

func (p *Producer) PublishOrderCancelled(order models.Order) error {
	return p.publish(p.cancelled, order)
}

func (p *Producer) publish(w *kafka.Writer, order models.Order) error {
	msgBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return w.WriteMessages(context.Background(),
		kafka.Message{
			Key:   []byte(order.OrderID),
			Value: msgBytes,
		},
	)
}

func (p *Producer) Close() error {
	if err := p.confirmed.Close(); err != nil {
		return err
	}
	return p.cancelled.Close()
}
