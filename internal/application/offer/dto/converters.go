package dto

import (
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
)

// ToOfferDTO converts an offer aggregate to its API shape.
func ToOfferDTO(off *offer.Offer) *OfferDTO {
	if off == nil {
		return nil
	}
	return &OfferDTO{
		SID:              off.SID(),
		Name:             off.Name(),
		Code:             off.Code(),
		Type:             off.Type().String(),
		Amount:           off.Amount(),
		Duration:         off.Duration().String(),
		DurationInMonths: off.DurationInMonths(),
		RedemptionType:   off.RedemptionType().String(),
		Cadence:          off.Cadence().String(),
		Currency:         off.Currency(),
		CouponID:         off.CouponID(),
		Active:           off.Active(),
		RedemptionCount:  off.RedemptionCount(),
		CreatedAt:        biztime.ISO8601(off.CreatedAt()),
		UpdatedAt:        biztime.ISO8601(off.UpdatedAt()),
	}
}

// ToOfferDTOList batch converts offers, skipping nils.
func ToOfferDTOList(offers []*offer.Offer) []*OfferDTO {
	dtos := make([]*OfferDTO, 0, len(offers))
	for _, off := range offers {
		if off != nil {
			dtos = append(dtos, ToOfferDTO(off))
		}
	}
	return dtos
}

// ToRedemptionDTO converts a redemption audit record to its API shape.
func ToRedemptionDTO(r *offer.Redemption) *RedemptionDTO {
	if r == nil {
		return nil
	}
	return &RedemptionDTO{
		SID:             r.SID(),
		OfferSID:        r.OfferSID(),
		MemberSID:       r.MemberSID(),
		SubscriptionSID: r.SubscriptionSID(),
		RedeemedAt:      biztime.ISO8601(r.RedeemedAt()),
	}
}
