package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/qasemB/Ecommerce-Api/models"
	"github.com/twmb/franz-go/pkg/kgo"
)

// KafkaPublisher produces one record per created order, keyed by the order
// reference.
type KafkaPublisher struct {
	client *kgo.Client
}

func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return &KafkaPublisher{client: client}, nil
}

func (k *KafkaPublisher) OrderCreated(ctx context.Context, order models.Order) error {
	value, err := json.Marshal(newOrderEvent(order))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	record := &kgo.Record{Key: []byte(order.Reference), Value: value}
	if err := k.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce order %s: %w", order.Reference, err)
	}
	return nil
}

func (k *KafkaPublisher) Close() {
	k.client.Close()
}
