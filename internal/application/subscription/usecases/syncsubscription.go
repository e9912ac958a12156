package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/tigefa4u/Ghost-sub000/internal/application/subscription/dto"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	sharedevents "github.com/tigefa4u/Ghost-sub000/internal/domain/shared/events"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/db"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// SyncSubscriptionCommand carries one provider subscription snapshot, already
// mapped from provider-native field names by the interface layer.
type SyncSubscriptionCommand struct {
	EventID           string // provider event ID, used for redelivery dedup; empty for polling syncs
	MemberSID         string
	ProviderID        string
	Status            string
	PriceAmount       int64
	PriceInterval     string
	PriceCurrency     string
	PriceNickname     string
	StartDate         time.Time
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
	DiscountStart     *time.Time
	DiscountEnd       *time.Time
	TrialStartAt      *time.Time
	TrialEndAt        *time.Time
	Coupon            *offer.CouponData
	// ExplicitOfferSID is set only when the caller knows exactly which offer
	// was redeemed (checkout completion, retention attach).
	ExplicitOfferSID *string
}

// SyncSubscriptionUseCase reconciles one provider snapshot into the local
// subscription record: provider-owned fields are overwritten verbatim, the
// recorded offer moves through the transition resolver, and redemptions are
// recorded exactly once per offer change.
type SyncSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	offerRepo        offer.Repository
	redemptionRepo   offer.RedemptionRepository
	couponResolver   CouponOfferResolver
	deduplicator     WebhookDeduplicator
	txManager        db.Transactor
	eventDispatcher  sharedevents.EventDispatcher
	logger           logger.Interface
}

func NewSyncSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	offerRepo offer.Repository,
	redemptionRepo offer.RedemptionRepository,
	couponResolver CouponOfferResolver,
	deduplicator WebhookDeduplicator,
	txManager db.Transactor,
	eventDispatcher sharedevents.EventDispatcher,
	logger logger.Interface,
) *SyncSubscriptionUseCase {
	return &SyncSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		offerRepo:        offerRepo,
		redemptionRepo:   redemptionRepo,
		couponResolver:   couponResolver,
		deduplicator:     deduplicator,
		txManager:        txManager,
		eventDispatcher:  eventDispatcher,
		logger:           logger,
	}
}

func (uc *SyncSubscriptionUseCase) Execute(ctx context.Context, cmd SyncSubscriptionCommand) (*dto.SyncResultDTO, error) {
	price, err := vo.NewPlanPrice(cmd.PriceAmount, vo.PlanInterval(cmd.PriceInterval), cmd.PriceCurrency, cmd.PriceNickname)
	if err != nil {
		return nil, fmt.Errorf("invalid price in snapshot: %w", err)
	}

	claimed := false
	if cmd.EventID != "" && uc.deduplicator != nil {
		duplicate, dedupErr := uc.deduplicator.MarkProcessed(ctx, cmd.EventID)
		switch {
		case dedupErr != nil:
			// Dedup is best-effort; the transition resolver is idempotent
			// anyway, so a broken dedup store must not block syncs.
			uc.logger.Warnw("webhook dedup check failed, continuing", "error", dedupErr, "event_id", cmd.EventID)
		case duplicate:
			uc.logger.Infow("skipping redelivered provider event", "event_id", cmd.EventID)
			return &dto.SyncResultDTO{Duplicate: true}, nil
		default:
			claimed = true
		}
	}

	state := subscription.ProviderState{
		Status:            vo.SubscriptionStatus(cmd.Status),
		Price:             price,
		StartDate:         cmd.StartDate,
		CurrentPeriodEnd:  cmd.CurrentPeriodEnd,
		CancelAtPeriodEnd: cmd.CancelAtPeriodEnd,
		DiscountStart:     cmd.DiscountStart,
		DiscountEnd:       cmd.DiscountEnd,
		TrialStartAt:      cmd.TrialStartAt,
		TrialEndAt:        cmd.TrialEndAt,
	}

	var (
		result        *dto.SyncResultDTO
		pendingEvents []sharedevents.DomainEvent
	)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var txErr error
		result, pendingEvents, txErr = uc.syncInTx(txCtx, cmd, state)
		return txErr
	})
	if err != nil {
		// Release the event claim so the provider's redelivery of this
		// failed event is processed instead of suppressed.
		if claimed {
			if relErr := uc.deduplicator.Release(ctx, cmd.EventID); relErr != nil {
				uc.logger.Warnw("failed to release webhook event claim", "error", relErr, "event_id", cmd.EventID)
			}
		}
		return nil, err
	}

	// Events publish only after the transaction commits.
	if uc.eventDispatcher != nil && len(pendingEvents) > 0 {
		if pubErr := uc.eventDispatcher.PublishAll(pendingEvents); pubErr != nil {
			uc.logger.Warnw("failed to publish sync events", "error", pubErr, "provider_id", cmd.ProviderID)
		}
	}

	return result, nil
}

func (uc *SyncSubscriptionUseCase) syncInTx(
	ctx context.Context,
	cmd SyncSubscriptionCommand,
	state subscription.ProviderState,
) (*dto.SyncResultDTO, []sharedevents.DomainEvent, error) {
	existing, err := uc.subscriptionRepo.GetByProviderID(ctx, cmd.ProviderID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	couponOfferSID, err := uc.resolveCouponOffer(ctx, cmd)
	if err != nil {
		return nil, nil, err
	}

	now := biztime.NowUTC()
	var events []sharedevents.DomainEvent

	if existing == nil {
		return uc.createFromSnapshot(ctx, cmd, state, couponOfferSID, now)
	}

	// The transition resolver reasons about the record as it was stored;
	// capture the trial window before the provider state overwrites it.
	oldStatus := existing.Status()
	storedTrialEndAt := existing.TrialEndAt()
	recordCreatedAt := existing.CreatedAt()
	if err := existing.SyncProviderState(state); err != nil {
		return nil, nil, fmt.Errorf("failed to apply provider state: %w", err)
	}

	transition := subscription.ResolveOfferTransition(subscription.OfferTransitionInput{
		ExistingOfferSID:   existing.OfferSID(),
		ExistingTrialEndAt: storedTrialEndAt,
		CouponOfferSID:     couponOfferSID,
		ExplicitOfferSID:   cmd.ExplicitOfferSID,
		DiscountStart:      cmd.DiscountStart,
		RecordCreatedAt:    recordCreatedAt,
		Now:                now,
	})
	existing.ApplyOfferTransition(transition)

	includeOffer := transition.Kind != subscription.OfferUnchanged
	if err := uc.subscriptionRepo.Update(ctx, existing, includeOffer); err != nil {
		return nil, nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	if transition.Redemption != nil {
		if err := uc.recordRedemption(ctx, existing, transition.Redemption); err != nil {
			return nil, nil, err
		}
		events = append(events, offer.NewOfferRedeemedEvent(
			transition.Redemption.OfferSID,
			existing.MemberSID(),
			existing.SID(),
			transition.Redemption.Timestamp,
		))
	}

	if oldStatus != existing.Status() {
		events = append(events, subscription.NewSubscriptionStatusChangedEvent(
			existing.SID(), existing.MemberSID(), oldStatus.String(), existing.Status().String(),
		))
	}

	uc.logger.Infow("synced subscription",
		"subscription_sid", existing.SID(),
		"provider_id", cmd.ProviderID,
		"status", existing.Status().String(),
		"offer_transition", transition.Kind.String(),
	)

	return &dto.SyncResultDTO{
		SubscriptionSID: existing.SID(),
		Status:          existing.Status().String(),
		OfferTransition: transition.Kind.String(),
		OfferSID:        existing.OfferSID(),
		RedemptionFired: transition.Redemption != nil,
	}, events, nil
}

func (uc *SyncSubscriptionUseCase) createFromSnapshot(
	ctx context.Context,
	cmd SyncSubscriptionCommand,
	state subscription.ProviderState,
	couponOfferSID *string,
	now time.Time,
) (*dto.SyncResultDTO, []sharedevents.DomainEvent, error) {
	sub, err := subscription.NewSubscription(cmd.MemberSID, cmd.ProviderID, state)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create subscription: %w", err)
	}

	transition := subscription.ResolveOfferTransition(subscription.OfferTransitionInput{
		IsNewRecord:      true,
		CouponOfferSID:   couponOfferSID,
		ExplicitOfferSID: cmd.ExplicitOfferSID,
		DiscountStart:    cmd.DiscountStart,
		RecordCreatedAt:  sub.CreatedAt(),
		Now:              now,
	})
	sub.ApplyOfferTransition(transition)

	if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
		return nil, nil, fmt.Errorf("failed to persist subscription: %w", err)
	}

	events := []sharedevents.DomainEvent{
		subscription.NewSubscriptionLinkedEvent(sub.SID(), sub.MemberSID(), sub.ProviderID(), sub.Status().String()),
	}

	if transition.Redemption != nil {
		if err := uc.recordRedemption(ctx, sub, transition.Redemption); err != nil {
			return nil, nil, err
		}
		events = append(events, offer.NewOfferRedeemedEvent(
			transition.Redemption.OfferSID,
			sub.MemberSID(),
			sub.SID(),
			transition.Redemption.Timestamp,
		))
	}

	uc.logger.Infow("linked new subscription",
		"subscription_sid", sub.SID(),
		"member_sid", sub.MemberSID(),
		"provider_id", cmd.ProviderID,
		"offer_transition", transition.Kind.String(),
	)

	return &dto.SyncResultDTO{
		SubscriptionSID: sub.SID(),
		Created:         true,
		Status:          sub.Status().String(),
		OfferTransition: transition.Kind.String(),
		OfferSID:        sub.OfferSID(),
		RedemptionFired: transition.Redemption != nil,
	}, events, nil
}

// resolveCouponOffer maps the snapshot's coupon to a local offer SID.
// Structurally unrepresentable coupons downgrade to "no offer" with a
// warning; any other resolver failure aborts the sync.
func (uc *SyncSubscriptionUseCase) resolveCouponOffer(ctx context.Context, cmd SyncSubscriptionCommand) (*string, error) {
	if cmd.Coupon == nil {
		return nil, nil
	}

	off, err := uc.couponResolver.EnsureOfferForCoupon(ctx, *cmd.Coupon)
	if err != nil {
		if offer.IsIncompatibleCoupon(err) {
			uc.logger.Warnw("coupon cannot be represented as an offer, syncing without one",
				"error", err,
				"coupon_id", cmd.Coupon.CouponID,
				"provider_id", cmd.ProviderID,
			)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve coupon offer: %w", err)
	}
	if off == nil {
		return nil, nil
	}

	sid := off.SID()
	return &sid, nil
}

func (uc *SyncSubscriptionUseCase) recordRedemption(
	ctx context.Context,
	sub *subscription.Subscription,
	intent *subscription.RedemptionIntent,
) error {
	redemption, err := offer.NewRedemption(intent.OfferSID, sub.MemberSID(), sub.SID(), intent.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to build redemption: %w", err)
	}
	if err := uc.redemptionRepo.Create(ctx, redemption); err != nil {
		return fmt.Errorf("failed to record redemption: %w", err)
	}

	off, err := uc.offerRepo.GetBySID(ctx, intent.OfferSID)
	if err != nil {
		return fmt.Errorf("failed to load offer for redemption count: %w", err)
	}
	if off != nil {
		off.RecordRedemption()
		if err := uc.offerRepo.Update(ctx, off); err != nil {
			return fmt.Errorf("failed to update offer redemption count: %w", err)
		}
	}

	return nil
}
