package subscription

import "time"

// SubscriptionLinkedEvent represents a provider subscription being linked to
// a member for the first time.
type SubscriptionLinkedEvent struct {
	SubscriptionSID string
	MemberSID       string
	ProviderID      string
	Status          string
	Timestamp       time.Time
}

func NewSubscriptionLinkedEvent(subscriptionSID, memberSID, providerID, status string) *SubscriptionLinkedEvent {
	return &SubscriptionLinkedEvent{
		SubscriptionSID: subscriptionSID,
		MemberSID:       memberSID,
		ProviderID:      providerID,
		Status:          status,
		Timestamp:       time.Now().UTC(),
	}
}

func (e *SubscriptionLinkedEvent) GetEventType() string {
	return "subscription.linked"
}

func (e *SubscriptionLinkedEvent) GetAggregateID() string {
	return e.SubscriptionSID
}

func (e *SubscriptionLinkedEvent) GetOccurredAt() time.Time {
	return e.Timestamp
}

// SubscriptionStatusChangedEvent represents a provider-driven status change
// observed during sync.
type SubscriptionStatusChangedEvent struct {
	SubscriptionSID string
	MemberSID       string
	OldStatus       string
	NewStatus       string
	Timestamp       time.Time
}

func NewSubscriptionStatusChangedEvent(subscriptionSID, memberSID, oldStatus, newStatus string) *SubscriptionStatusChangedEvent {
	return &SubscriptionStatusChangedEvent{
		SubscriptionSID: subscriptionSID,
		MemberSID:       memberSID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Timestamp:       time.Now().UTC(),
	}
}

func (e *SubscriptionStatusChangedEvent) GetEventType() string {
	return "subscription.status_changed"
}

func (e *SubscriptionStatusChangedEvent) GetAggregateID() string {
	return e.SubscriptionSID
}

func (e *SubscriptionStatusChangedEvent) GetOccurredAt() time.Time {
	return e.Timestamp
}
