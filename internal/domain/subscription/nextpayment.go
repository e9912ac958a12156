package subscription

import (
	"math"
	"time"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	offervo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
)

// NextPayment is the projected charge at the member's next billing cycle.
// Computed on read paths, never persisted.
type NextPayment struct {
	OriginalAmount int64
	Amount         int64
	Interval       string
	Currency       string
	Discount       *NextPaymentDiscount
}

// NextPaymentDiscount is display metadata for an active price reduction.
type NextPaymentDiscount struct {
	OfferSID string
	Start    *time.Time
	End      *time.Time
	Duration string
	Type     string
	Amount   int64
}

// CalculateNextPayment projects what sub's member will be charged next
// cycle. off is the offer recorded on the subscription, nil when none.
// Returns nil for subscriptions that are not currently billing.
//
// Trial-type offers already zero the bill through the provider's native
// trial mechanism and need no discount math here. Retention offers postdate
// discount-window tracking, so a missing provider window for one means no
// discount rather than a legacy reconstruction; signup and free_months
// offers remain eligible for the backport.
//
// Pure function; never errors. Unknown offer types leave the amount
// unchanged, so a forward-incompatible offer never breaks billing display.
func CalculateNextPayment(sub *Subscription, off *offer.Offer, now time.Time) *NextPayment {
	if sub == nil || !sub.IsBilling() {
		return nil
	}

	price := sub.Price()
	payment := &NextPayment{
		OriginalAmount: price.Amount(),
		Amount:         price.Amount(),
		Interval:       string(price.Interval()),
		Currency:       price.Currency(),
	}

	if off == nil || off.Type() == offervo.TypeTrial {
		return payment
	}

	if sub.DiscountStart() == nil &&
		off.RedemptionType() == offervo.RedemptionRetention &&
		off.Type() != offervo.TypeFreeMonths {
		return payment
	}

	window := ResolveDiscountWindow(sub, off, now)
	if window == nil {
		return payment
	}

	payment.Amount = CalculateDiscountedAmount(price.Amount(), off.Type(), off.Amount())
	payment.Discount = &NextPaymentDiscount{
		OfferSID: off.SID(),
		Start:    window.Start,
		End:      window.End,
		Duration: off.Duration().String(),
		Type:     off.Type().String(),
		Amount:   off.Amount(),
	}

	return payment
}

// CalculateDiscountedAmount applies an offer's reduction to an original
// minor-unit amount. Fixed discounts floor at zero; types with no price
// semantics here (free_months) leave the amount unchanged.
func CalculateDiscountedAmount(original int64, offerType offervo.OfferType, offerAmount int64) int64 {
	switch offerType {
	case offervo.TypePercent:
		return original - int64(math.Round(float64(original)*float64(offerAmount)/100))
	case offervo.TypeFixed:
		discounted := original - offerAmount
		if discounted < 0 {
			return 0
		}
		return discounted
	default:
		return original
	}
}
