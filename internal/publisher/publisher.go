package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

type EventType string

const (
	ItemAdded       EventType = "cart.item_added"
	ItemIncremented EventType = "cart.item_incremented"
	ItemDecremented EventType = "cart.item_decremented"
	ItemRemoved     EventType = "cart.item_removed"
)

// CartEvent describes one committed cart mutation. Quantity is the
// quantity after the write, zero for removals.
type CartEvent struct {
	Type       EventType `json:"event_type"`
	CartItemID string    `json:"cart_item_id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Quantity   int       `json:"qty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, events ...CartEvent) error
	Close() error
}

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(topic string, brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &KafkaPublisher{writer: w}
}

// Publish writes events in the given order. Messages are keyed by user, so
// one user's events land on one partition and keep that order.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...CartEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal cart event failed: %w", err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(event.UserID),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "event_type", Value: []byte(event.Type)},
			},
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write failed: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events; it is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...CartEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
