package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
)

// DefaultWebhookDedupTTLMinutes is how long processed event IDs are
// remembered. Providers redeliver within hours, not days.
const DefaultWebhookDedupTTLMinutes = 24 * 60

// WebhookDeduplicator provides Redis-based suppression of redelivered
// provider webhook events.
type WebhookDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWebhookDeduplicator creates a new WebhookDeduplicator instance.
// ttlMinutes <= 0 falls back to the default.
func NewWebhookDeduplicator(client *redis.Client, ttlMinutes int) *WebhookDeduplicator {
	if ttlMinutes <= 0 {
		ttlMinutes = DefaultWebhookDedupTTLMinutes
	}
	return &WebhookDeduplicator{
		client: client,
		ttl:    time.Duration(ttlMinutes) * time.Minute,
	}
}

// MarkProcessed records the event ID and reports whether it had been seen
// before. SETNX makes check and mark one atomic step, so two instances
// racing on the same delivery cannot both claim it.
func (d *WebhookDeduplicator) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	key := constants.WebhookDedupKeyPrefix + eventID

	fresh, err := d.client.SetNX(ctx, key, 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to mark webhook event: %w", err)
	}

	return !fresh, nil
}

// Release deletes a claimed event ID so the provider's redelivery of a
// failed event is processed instead of suppressed for the full TTL.
func (d *WebhookDeduplicator) Release(ctx context.Context, eventID string) error {
	key := constants.WebhookDedupKeyPrefix + eventID

	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to release webhook event: %w", err)
	}

	return nil
}
