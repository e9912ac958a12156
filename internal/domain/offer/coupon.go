package offer

import (
	"fmt"

	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
)

// CouponData is a provider coupon as reported on a subscription payload,
// already mapped from provider-native field names.
type CouponData struct {
	CouponID         string
	Name             string
	PercentOff       *int64
	AmountOff        *int64
	Currency         string
	Duration         string
	DurationInMonths int
}

// ParamsFromCoupon maps a provider coupon to offer creation parameters.
// Coupons whose shape the offer model cannot represent return an error
// matched by IsIncompatibleCoupon; callers decide whether that aborts the
// operation or just skips offer attachment.
func ParamsFromCoupon(c CouponData) (NewOfferParams, error) {
	if c.CouponID == "" {
		return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, "coupon has no identifier")
	}

	duration := vo.Duration(c.Duration)
	if !vo.ValidDurations[duration] {
		return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, fmt.Sprintf("unknown coupon duration %q", c.Duration))
	}
	if duration == vo.DurationRepeating && c.DurationInMonths <= 0 {
		return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, "repeating coupon without a month count")
	}

	name := c.Name
	if name == "" {
		name = c.CouponID
	}

	p := NewOfferParams{
		Name:             name,
		Duration:         duration,
		DurationInMonths: c.DurationInMonths,
		RedemptionType:   vo.RedemptionSignup,
		CouponID:         c.CouponID,
	}

	switch {
	case c.PercentOff != nil:
		if *c.PercentOff <= 0 || *c.PercentOff > 100 {
			return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, fmt.Sprintf("percent_off %d out of range", *c.PercentOff))
		}
		p.Type = vo.TypePercent
		p.Amount = *c.PercentOff
	case c.AmountOff != nil:
		if *c.AmountOff <= 0 {
			return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, fmt.Sprintf("amount_off %d out of range", *c.AmountOff))
		}
		if c.Currency == "" {
			return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, "fixed-amount coupon without a currency")
		}
		p.Type = vo.TypeFixed
		p.Amount = *c.AmountOff
		p.Currency = c.Currency
	default:
		return NewOfferParams{}, NewIncompatibleCouponError(c.CouponID, "coupon carries neither percent_off nor amount_off")
	}

	return p, nil
}
