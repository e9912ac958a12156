package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// EnsureOfferForCouponUseCase resolves a provider coupon to a local offer.
// Coupons configured directly in the provider dashboard have no local
// counterpart until first seen on a subscription, at which point one is
// created from the coupon's own shape.
type EnsureOfferForCouponUseCase struct {
	offerRepo offer.Repository
	logger    logger.Interface
}

func NewEnsureOfferForCouponUseCase(offerRepo offer.Repository, logger logger.Interface) *EnsureOfferForCouponUseCase {
	return &EnsureOfferForCouponUseCase{offerRepo: offerRepo, logger: logger}
}

func (uc *EnsureOfferForCouponUseCase) EnsureOfferForCoupon(ctx context.Context, coupon offer.CouponData) (*offer.Offer, error) {
	existing, err := uc.offerRepo.GetByCouponID(ctx, coupon.CouponID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up offer by coupon: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	params, err := offer.ParamsFromCoupon(coupon)
	if err != nil {
		return nil, err
	}

	off, err := offer.NewOffer(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build offer from coupon %s: %w", coupon.CouponID, err)
	}
	if err := uc.offerRepo.Create(ctx, off); err != nil {
		return nil, fmt.Errorf("failed to persist coupon-derived offer: %w", err)
	}

	uc.logger.Infow("created offer from provider coupon",
		"offer_sid", off.SID(),
		"coupon_id", coupon.CouponID,
		"type", off.Type().String(),
	)
	return off, nil
}
