// Package events announces created orders to the admin panel websocket feed
// and, when configured, to a Kafka topic.
package events

import (
	"context"
	"errors"

	"github.com/qasemB/Ecommerce-Api/models"
)

const OrderCreatedType = "order.created"

// Publisher is told about every committed order.
type Publisher interface {
	OrderCreated(ctx context.Context, order models.Order) error
}

// OrderEvent is the payload written to every sink.
type OrderEvent struct {
	Type  string       `json:"type"`
	Order models.Order `json:"order"`
}

func newOrderEvent(order models.Order) OrderEvent {
	return OrderEvent{Type: OrderCreatedType, Order: order}
}

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) OrderCreated(ctx context.Context, order models.Order) error {
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.OrderCreated(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event.
type Discard struct{}

func (Discard) OrderCreated(context.Context, models.Order) error { return nil }
