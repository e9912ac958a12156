package valueobjects

// SubscriptionStatus mirrors the billing provider's subscription lifecycle.
// The provider is the source of truth; local state never invents transitions.
type SubscriptionStatus string

const (
	StatusActive            SubscriptionStatus = "active"
	StatusTrialing          SubscriptionStatus = "trialing"
	StatusPastDue           SubscriptionStatus = "past_due"
	StatusUnpaid            SubscriptionStatus = "unpaid"
	StatusIncomplete        SubscriptionStatus = "incomplete"
	StatusIncompleteExpired SubscriptionStatus = "incomplete_expired"
	StatusCanceled          SubscriptionStatus = "canceled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

// IsBilling reports whether the subscription is currently owed a next payment.
// Only these four states project a future charge.
func (s SubscriptionStatus) IsBilling() bool {
	switch s {
	case StatusActive, StatusTrialing, StatusPastDue, StatusUnpaid:
		return true
	default:
		return false
	}
}

var ValidStatuses = map[SubscriptionStatus]bool{
	StatusActive:            true,
	StatusTrialing:          true,
	StatusPastDue:           true,
	StatusUnpaid:            true,
	StatusIncomplete:        true,
	StatusIncompleteExpired: true,
	StatusCanceled:          true,
}
