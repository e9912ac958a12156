package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/application/subscription/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type GetSubscriptionQuery struct {
	SID string
}

// GetSubscriptionUseCase reads a single subscription with its next-payment
// projection.
type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	offerRepo        offer.Repository
	logger           logger.Interface
}

func NewGetSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	offerRepo offer.Repository,
	logger logger.Interface,
) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		offerRepo:        offerRepo,
		logger:           logger,
	}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, query GetSubscriptionQuery) (*dto.SubscriptionDTO, error) {
	sub, err := uc.subscriptionRepo.GetBySID(ctx, query.SID)
	if err != nil {
		uc.logger.Errorw("failed to get subscription", "error", err, "sid", query.SID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found")
	}

	var off *offer.Offer
	if sid := sub.OfferSID(); sid != nil {
		off, err = uc.offerRepo.GetBySID(ctx, *sid)
		if err != nil {
			uc.logger.Warnw("failed to load offer for next payment", "error", err, "offer_sid", *sid)
			off = nil
		}
	}

	nextPayment := subscription.CalculateNextPayment(sub, off, biztime.NowUTC())
	return dto.ToSubscriptionDTO(sub, nextPayment), nil
}
