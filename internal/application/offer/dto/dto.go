package dto

// OfferDTO is the API representation of an offer.
type OfferDTO struct {
	SID              string `json:"sid"`
	Name             string `json:"name"`
	Code             string `json:"code,omitempty"`
	Type             string `json:"type"`
	Amount           int64  `json:"amount"`
	Duration         string `json:"duration,omitempty"`
	DurationInMonths int    `json:"duration_in_months,omitempty"`
	RedemptionType   string `json:"redemption_type"`
	Cadence          string `json:"cadence,omitempty"`
	Currency         string `json:"currency,omitempty"`
	CouponID         string `json:"coupon_id,omitempty"`
	Active           bool   `json:"active"`
	RedemptionCount  int    `json:"redemption_count"`
	CreatedAt        string `json:"created_at"`
	UpdatedAt        string `json:"updated_at"`
}

// RedemptionDTO is the audit record of an offer attaching to a subscription.
type RedemptionDTO struct {
	SID             string `json:"sid"`
	OfferSID        string `json:"offer_sid"`
	MemberSID       string `json:"member_sid"`
	SubscriptionSID string `json:"subscription_sid"`
	RedeemedAt      string `json:"redeemed_at"`
}
