package valueobjects

// RedemptionType distinguishes when an offer may attach to a subscription.
type RedemptionType string

const (
	// RedemptionSignup offers apply only at initial subscription creation.
	RedemptionSignup RedemptionType = "signup"
	// RedemptionRetention offers can be attached later to an existing
	// subscription, typically from a cancellation flow.
	RedemptionRetention RedemptionType = "retention"
)

func (r RedemptionType) String() string {
	return string(r)
}

var ValidRedemptionTypes = map[RedemptionType]bool{
	RedemptionSignup:    true,
	RedemptionRetention: true,
}
