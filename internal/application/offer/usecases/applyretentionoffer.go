package usecases

import (
	"context"
	"fmt"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	sharedevents "github.com/tigefa4u/Ghost-sub000/internal/domain/shared/events"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/db"
	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

type ApplyRetentionOfferCommand struct {
	SubscriptionSID string
	OfferSID        string
}

// ApplyRetentionOfferUseCase attaches a retention offer to an existing
// subscription, typically from the cancellation flow. The offer identifier
// is explicit here, so it replaces whatever the subscription carried and a
// redemption is recorded. The actual price change reaches the record later
// through the provider's own webhook.
type ApplyRetentionOfferUseCase struct {
	subscriptionRepo subscription.Repository
	offerRepo        offer.Repository
	redemptionRepo   offer.RedemptionRepository
	txManager        db.Transactor
	eventDispatcher  sharedevents.EventDispatcher
	logger           logger.Interface
}

func NewApplyRetentionOfferUseCase(
	subscriptionRepo subscription.Repository,
	offerRepo offer.Repository,
	redemptionRepo offer.RedemptionRepository,
	txManager db.Transactor,
	eventDispatcher sharedevents.EventDispatcher,
	logger logger.Interface,
) *ApplyRetentionOfferUseCase {
	return &ApplyRetentionOfferUseCase{
		subscriptionRepo: subscriptionRepo,
		offerRepo:        offerRepo,
		redemptionRepo:   redemptionRepo,
		txManager:        txManager,
		eventDispatcher:  eventDispatcher,
		logger:           logger,
	}
}

func (uc *ApplyRetentionOfferUseCase) Execute(ctx context.Context, cmd ApplyRetentionOfferCommand) error {
	off, err := uc.offerRepo.GetBySID(ctx, cmd.OfferSID)
	if err != nil {
		return fmt.Errorf("failed to get offer: %w", err)
	}
	if off == nil {
		return apperrors.NewNotFoundError("offer not found")
	}
	if !off.Active() {
		return apperrors.NewValidationError("offer is no longer active", cmd.OfferSID)
	}

	var (
		redemptionIntent *subscription.RedemptionIntent
		memberSID        string
		subscriptionSID  string
	)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.subscriptionRepo.GetBySID(txCtx, cmd.SubscriptionSID)
		if err != nil {
			return fmt.Errorf("failed to get subscription: %w", err)
		}
		if sub == nil {
			return apperrors.NewNotFoundError("subscription not found")
		}

		offerSID := off.SID()
		transition := subscription.ResolveOfferTransition(subscription.OfferTransitionInput{
			ExistingOfferSID:   sub.OfferSID(),
			ExistingTrialEndAt: sub.TrialEndAt(),
			ExplicitOfferSID:   &offerSID,
			// The subscription's stored window belongs to the previous
			// offer; the retention redemption is stamped now.
			RecordCreatedAt: biztime.NowUTC(),
			Now:             biztime.NowUTC(),
		})
		if transition.Redemption == nil {
			// Same offer already attached; nothing to record.
			return nil
		}

		sub.ApplyOfferTransition(transition)
		if err := uc.subscriptionRepo.Update(txCtx, sub, true); err != nil {
			return fmt.Errorf("failed to update subscription: %w", err)
		}

		redemption, err := offer.NewRedemption(offerSID, sub.MemberSID(), sub.SID(), transition.Redemption.Timestamp)
		if err != nil {
			return fmt.Errorf("failed to build redemption: %w", err)
		}
		if err := uc.redemptionRepo.Create(txCtx, redemption); err != nil {
			return fmt.Errorf("failed to record redemption: %w", err)
		}

		off.RecordRedemption()
		if err := uc.offerRepo.Update(txCtx, off); err != nil {
			return fmt.Errorf("failed to update offer: %w", err)
		}

		redemptionIntent = transition.Redemption
		memberSID = sub.MemberSID()
		subscriptionSID = sub.SID()
		uc.logger.Infow("attached retention offer",
			"subscription_sid", sub.SID(),
			"offer_sid", offerSID,
			"member_sid", sub.MemberSID(),
		)
		return nil
	})
	if err != nil {
		return err
	}

	if redemptionIntent != nil && uc.eventDispatcher != nil {
		event := offer.NewOfferRedeemedEvent(redemptionIntent.OfferSID, memberSID, subscriptionSID, redemptionIntent.Timestamp)
		if pubErr := uc.eventDispatcher.Publish(event); pubErr != nil {
			uc.logger.Warnw("failed to publish redemption event", "error", pubErr, "offer_sid", redemptionIntent.OfferSID)
		}
	}

	return nil
}
