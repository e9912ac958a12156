package dto

// SubscriptionDTO is the API representation of a member's subscription.
// Timestamps are ISO 8601 strings in UTC.
type SubscriptionDTO struct {
	SID               string                 `json:"sid"`
	MemberSID         string                 `json:"member_sid"`
	ProviderID        string                 `json:"provider_id"`
	Status            string                 `json:"status"`
	PriceAmount       int64                  `json:"price_amount"`
	PriceInterval     string                 `json:"price_interval"`
	PriceCurrency     string                 `json:"price_currency"`
	PriceNickname     string                 `json:"price_nickname,omitempty"`
	StartDate         string                 `json:"start_date"`
	CurrentPeriodEnd  *string                `json:"current_period_end,omitempty"`
	CancelAtPeriodEnd bool                   `json:"cancel_at_period_end"`
	TrialStartAt      *string                `json:"trial_start_at,omitempty"`
	TrialEndAt        *string                `json:"trial_end_at,omitempty"`
	OfferSID          *string                `json:"offer_sid,omitempty"`
	NextPayment       *NextPaymentDTO        `json:"next_payment,omitempty"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt         string                 `json:"created_at"`
	UpdatedAt         string                 `json:"updated_at"`
}

// NextPaymentDTO projects the next charge, with discount metadata when one
// is active.
type NextPaymentDTO struct {
	OriginalAmount int64        `json:"original_amount"`
	Amount         int64        `json:"amount"`
	Interval       string       `json:"interval"`
	Currency       string       `json:"currency"`
	Discount       *DiscountDTO `json:"discount,omitempty"`
}

// DiscountDTO is display metadata for an active price reduction.
type DiscountDTO struct {
	OfferSID string  `json:"offer_sid"`
	Start    *string `json:"start,omitempty"`
	End      *string `json:"end,omitempty"`
	Duration string  `json:"duration"`
	Type     string  `json:"type"`
	Amount   int64   `json:"amount"`
}

// SyncResultDTO reports the outcome of a subscription sync.
type SyncResultDTO struct {
	SubscriptionSID string  `json:"subscription_sid"`
	Created         bool    `json:"created"`
	Status          string  `json:"status"`
	OfferTransition string  `json:"offer_transition"`
	OfferSID        *string `json:"offer_sid,omitempty"`
	RedemptionFired bool    `json:"redemption_fired"`
	Duplicate       bool    `json:"duplicate"`
}
