package usecases

import (
	"context"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
)

// CouponOfferResolver maps a provider coupon to a local offer, creating one
// on the fly when the coupon was configured directly in the provider
// dashboard and has no local counterpart yet.
//
// Implementations signal structurally unrepresentable coupons with an error
// matched by offer.IsIncompatibleCoupon; callers treat that class as
// non-fatal.
type CouponOfferResolver interface {
	EnsureOfferForCoupon(ctx context.Context, coupon offer.CouponData) (*offer.Offer, error)
}

// WebhookDeduplicator guards against provider event redelivery.
type WebhookDeduplicator interface {
	// MarkProcessed records the event ID and reports whether it was seen
	// before. A true return means the event is a duplicate.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	// Release forgets a claimed event ID. Called when processing fails, so
	// the provider's redelivery is not suppressed as a duplicate.
	Release(ctx context.Context, eventID string) error
}
