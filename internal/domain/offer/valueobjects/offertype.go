package valueobjects

// OfferType describes how an offer reduces what a member pays.
type OfferType string

const (
	// TypePercent reduces the plan amount by a percentage.
	TypePercent OfferType = "percent"
	// TypeFixed reduces the plan amount by a fixed minor-unit amount.
	TypeFixed OfferType = "fixed"
	// TypeFreeMonths grants whole free months, realized as a provider trial
	// rather than a discount object.
	TypeFreeMonths OfferType = "free_months"
	// TypeTrial grants free days at signup, also realized as a provider trial.
	TypeTrial OfferType = "trial"
)

func (t OfferType) String() string {
	return string(t)
}

// IsTrialStyle reports whether the offer is realized through the billing
// provider's trial mechanism instead of a discount/coupon object.
func (t OfferType) IsTrialStyle() bool {
	return t == TypeFreeMonths || t == TypeTrial
}

var ValidOfferTypes = map[OfferType]bool{
	TypePercent:    true,
	TypeFixed:      true,
	TypeFreeMonths: true,
	TypeTrial:      true,
}
