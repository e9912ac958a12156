package pubsub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// SubscriptionEventMessage is the cross-instance wire form of a subscription
// lifecycle change observed during sync.
type SubscriptionEventMessage struct {
	EventType       string `json:"event_type"`
	SubscriptionSID string `json:"subscription_sid"`
	MemberSID       string `json:"member_sid"`
	OldStatus       string `json:"old_status,omitempty"`
	NewStatus       string `json:"new_status,omitempty"`
	OccurredAt      int64  `json:"occurred_at"`
}

// SubscriptionEventHandler is a callback function for handling subscription events
type SubscriptionEventHandler func(ctx context.Context, event SubscriptionEventMessage)

// RedisSubscriptionEventBus distributes subscription lifecycle events across
// instances using Redis Pub/Sub.
type RedisSubscriptionEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisSubscriptionEventBus creates a new Redis-based subscription event bus
func NewRedisSubscriptionEventBus(client *redis.Client, logger logger.Interface) *RedisSubscriptionEventBus {
	return &RedisSubscriptionEventBus{
		client: client,
		logger: logger,
	}
}

// Publish publishes a subscription lifecycle event
func (b *RedisSubscriptionEventBus) Publish(ctx context.Context, event SubscriptionEventMessage) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, constants.ChannelSubscriptionEvents, data).Err(); err != nil {
		b.logger.Errorw("failed to publish subscription event",
			"event_type", event.EventType,
			"subscription_sid", event.SubscriptionSID,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe subscribes to subscription events and calls the handler for each event
func (b *RedisSubscriptionEventBus) Subscribe(ctx context.Context, handler SubscriptionEventHandler) error {
	pubsub := b.client.Subscribe(ctx, constants.ChannelSubscriptionEvents)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to subscription events", "channel", constants.ChannelSubscriptionEvents)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("subscription event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("subscription event channel closed")
				return nil
			}

			var event SubscriptionEventMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal subscription event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			go handler(context.Background(), event)
		}
	}
}
