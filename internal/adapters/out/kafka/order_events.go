// Package kafka publishes integration events to the message broker.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/IBM/sarama"
)

var _ ports.OrderEventPublisher = (*OrderProducer)(nil)

// orderChangedEvent is the wire form of an order status change.
type orderChangedEvent struct {
	OrderID      string     `json:"order_id"`
	RestaurantID string     `json:"restaurant_id"`
	Status       string     `json:"status"`
	CourierID    *string    `json:"courier_id,omitempty"`
	DeliveredAt  *time.Time `json:"delivered_at,omitempty"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// OrderProducer publishes order change events to a Kafka topic, keyed by
// order id so all events of one order land on the same partition.
type OrderProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderProducer connects a synchronous producer to the given brokers.
func NewOrderProducer(brokers []string, topic string) (*OrderProducer, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if topic == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, errs.NewInfrastructureError("connect to kafka", err)
	}

	return &OrderProducer{producer: producer, topic: topic}, nil
}

// PublishOrderChanged announces that aggregate reached its current status.
func (p *OrderProducer) PublishOrderChanged(ctx context.Context, aggregate *order.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if aggregate == nil {
		return errs.NewValueIsRequiredError("aggregate")
	}

	event := orderChangedEvent{
		OrderID:      aggregate.ID().String(),
		RestaurantID: aggregate.RestaurantID().String(),
		Status:       aggregate.Status().String(),
		DeliveredAt:  aggregate.DeliveredAt(),
		OccurredAt:   aggregate.UpdatedAt(),
	}
	if courierID := aggregate.CourierID(); courierID != nil {
		id := courierID.String()
		event.CourierID = &id
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errs.NewInfrastructureError("marshal order changed event", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := p.producer.SendMessage(message); err != nil {
		return errs.NewInfrastructureError("publish order changed event", err)
	}
	return nil
}

// Close releases the underlying producer connection.
func (p *OrderProducer) Close() error {
	return p.producer.Close()
}
