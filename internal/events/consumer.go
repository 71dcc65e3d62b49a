package events

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"restaurant-ordering/internal/domain"

	"github.com/segmentio/kafka-go"
)

// OrderStats records a placed order for running per-restaurant counters.
type OrderStats interface {
	RecordOrder(ctx context.Context, restaurantID int) error
}

// Consumer reads order events off Kafka and keeps order statistics current.
type Consumer struct {
	Reader *kafka.Reader
	Stats  OrderStats
}

func NewConsumer(reader *kafka.Reader, stats OrderStats) *Consumer {
	return &Consumer{
		Reader: reader,
		Stats:  stats,
	}
}

// Start blocks until the context is cancelled. Malformed or unknown
// messages are logged and skipped; the loop never stops on a bad event.
func (c *Consumer) Start(ctx context.Context) {
	log.Println("[events] starting order event consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("[events] error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("[events] error unmarshaling message: %v", err)
			continue
		}

		if err := c.Process(ctx, event); err != nil {
			log.Printf("[events] error processing event %s: %v", event.EventID, err)
		}
	}
}

func (c *Consumer) Process(ctx context.Context, event domain.OrderEvent) error {
	if event.Type != "order_placed" {
		return nil
	}
	return c.Stats.RecordOrder(ctx, event.RestaurantID)
}
