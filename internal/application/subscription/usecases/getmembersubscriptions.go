package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/application/subscription/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type GetMemberSubscriptionsQuery struct {
	MemberSID string
}

// GetMemberSubscriptionsUseCase reads a member's subscriptions and projects
// each billing one's next payment.
type GetMemberSubscriptionsUseCase struct {
	subscriptionRepo subscription.Repository
	offerRepo        offer.Repository
	logger           logger.Interface
}

func NewGetMemberSubscriptionsUseCase(
	subscriptionRepo subscription.Repository,
	offerRepo offer.Repository,
	logger logger.Interface,
) *GetMemberSubscriptionsUseCase {
	return &GetMemberSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		offerRepo:        offerRepo,
		logger:           logger,
	}
}

func (uc *GetMemberSubscriptionsUseCase) Execute(ctx context.Context, query GetMemberSubscriptionsQuery) ([]*dto.SubscriptionDTO, error) {
	if query.MemberSID == "" {
		return nil, fmt.Errorf("member SID is required")
	}

	subs, err := uc.subscriptionRepo.GetByMemberSID(ctx, query.MemberSID)
	if err != nil {
		uc.logger.Errorw("failed to list member subscriptions", "error", err, "member_sid", query.MemberSID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	now := biztime.NowUTC()
	result := make([]*dto.SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		var off *offer.Offer
		if sid := sub.OfferSID(); sid != nil {
			off, err = uc.offerRepo.GetBySID(ctx, *sid)
			if err != nil {
				// A broken offer row degrades the projection, not the read.
				uc.logger.Warnw("failed to load offer for next payment",
					"error", err, "offer_sid", *sid, "subscription_sid", sub.SID())
				off = nil
			}
		}
		nextPayment := subscription.CalculateNextPayment(sub, off, now)
		result = append(result, dto.ToSubscriptionDTO(sub, nextPayment))
	}

	return result, nil
}
