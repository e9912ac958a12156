package offer

import "time"

// OfferRedeemedEventType is the dispatcher routing key for redemptions.
const OfferRedeemedEventType = "offer.redeemed"

// OfferRedeemedEvent records that a member's subscription picked up an offer.
// OccurredAt carries the coupon's start timestamp when the billing provider
// reported one, else the subscription record's creation time.
type OfferRedeemedEvent struct {
	OfferSID        string
	MemberSID       string
	SubscriptionSID string
	OccurredAt      time.Time
}

func NewOfferRedeemedEvent(offerSID, memberSID, subscriptionSID string, occurredAt time.Time) *OfferRedeemedEvent {
	return &OfferRedeemedEvent{
		OfferSID:        offerSID,
		MemberSID:       memberSID,
		SubscriptionSID: subscriptionSID,
		OccurredAt:      occurredAt,
	}
}

func (e *OfferRedeemedEvent) GetEventType() string {
	return OfferRedeemedEventType
}

func (e *OfferRedeemedEvent) GetAggregateID() string {
	return e.OfferSID
}

func (e *OfferRedeemedEvent) GetOccurredAt() time.Time {
	return e.OccurredAt
}
