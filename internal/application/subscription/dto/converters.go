package dto

import (
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
)

// ToSubscriptionDTO converts a subscription aggregate to its API shape.
// nextPayment may be nil for non-billing subscriptions.
func ToSubscriptionDTO(sub *subscription.Subscription, nextPayment *subscription.NextPayment) *SubscriptionDTO {
	if sub == nil {
		return nil
	}

	price := sub.Price()
	d := &SubscriptionDTO{
		SID:               sub.SID(),
		MemberSID:         sub.MemberSID(),
		ProviderID:        sub.ProviderID(),
		Status:            sub.Status().String(),
		PriceAmount:       price.Amount(),
		PriceInterval:     string(price.Interval()),
		PriceCurrency:     price.Currency(),
		PriceNickname:     price.Nickname(),
		StartDate:         biztime.ISO8601(sub.StartDate()),
		CurrentPeriodEnd:  biztime.ISO8601Ptr(sub.CurrentPeriodEnd()),
		CancelAtPeriodEnd: sub.CancelAtPeriodEnd(),
		TrialStartAt:      biztime.ISO8601Ptr(sub.TrialStartAt()),
		TrialEndAt:        biztime.ISO8601Ptr(sub.TrialEndAt()),
		OfferSID:          sub.OfferSID(),
		NextPayment:       toNextPaymentDTO(nextPayment),
		CreatedAt:         biztime.ISO8601(sub.CreatedAt()),
		UpdatedAt:         biztime.ISO8601(sub.UpdatedAt()),
	}
	if len(sub.Metadata()) > 0 {
		d.Metadata = sub.Metadata()
	}
	return d
}

func toNextPaymentDTO(np *subscription.NextPayment) *NextPaymentDTO {
	if np == nil {
		return nil
	}
	d := &NextPaymentDTO{
		OriginalAmount: np.OriginalAmount,
		Amount:         np.Amount,
		Interval:       np.Interval,
		Currency:       np.Currency,
	}
	if np.Discount != nil {
		d.Discount = &DiscountDTO{
			OfferSID: np.Discount.OfferSID,
			Start:    biztime.ISO8601Ptr(np.Discount.Start),
			End:      biztime.ISO8601Ptr(np.Discount.End),
			Duration: np.Discount.Duration,
			Type:     np.Discount.Type,
			Amount:   np.Discount.Amount,
		}
	}
	return d
}
