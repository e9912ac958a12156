package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// OfferRedeemedMessage is the cross-instance wire form of a redemption.
type OfferRedeemedMessage struct {
	OfferSID        string `json:"offer_sid"`
	MemberSID       string `json:"member_sid,omitempty"`
	SubscriptionSID string `json:"subscription_sid"`
	RedeemedAt      int64  `json:"redeemed_at"`
}

// OfferEventHandler is a callback function for handling offer events
type OfferEventHandler func(ctx context.Context, event OfferRedeemedMessage)

// RedisOfferEventBus distributes offer redemptions across instances using
// Redis Pub/Sub, so stats consumers on other replicas see them live.
type RedisOfferEventBus struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisOfferEventBus creates a new Redis-based offer event bus
func NewRedisOfferEventBus(client *redis.Client, logger logger.Interface) *RedisOfferEventBus {
	return &RedisOfferEventBus{
		client: client,
		logger: logger,
	}
}

// PublishRedemption publishes an offer redemption event
func (b *RedisOfferEventBus) PublishRedemption(ctx context.Context, offerSID, memberSID, subscriptionSID string, redeemedAt time.Time) error {
	data, err := json.Marshal(OfferRedeemedMessage{
		OfferSID:        offerSID,
		MemberSID:       memberSID,
		SubscriptionSID: subscriptionSID,
		RedeemedAt:      redeemedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.client.Publish(ctx, constants.ChannelOfferEvents, data).Err(); err != nil {
		b.logger.Errorw("failed to publish offer redemption event",
			"offer_sid", offerSID,
			"subscription_sid", subscriptionSID,
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debugw("offer redemption event published",
		"offer_sid", offerSID,
		"subscription_sid", subscriptionSID,
	)
	return nil
}

// Subscribe subscribes to offer redemption events and calls the handler for each event
func (b *RedisOfferEventBus) Subscribe(ctx context.Context, handler OfferEventHandler) error {
	pubsub := b.client.Subscribe(ctx, constants.ChannelOfferEvents)
	defer pubsub.Close()

	// Wait for subscription confirmation
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	b.logger.Infow("subscribed to offer events", "channel", constants.ChannelOfferEvents)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			b.logger.Infow("offer event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				b.logger.Warnw("offer event channel closed")
				return nil
			}

			var event OfferRedeemedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal offer event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}

			// Handle event in background goroutine to avoid blocking the event loop
			go handler(context.Background(), event)
		}
	}
}
