package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	sharedevents "github.com/tigefa4u/Ghost-sub000/internal/domain/shared/events"
	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

// --- in-memory fakes ---

type fakeSubscriptionRepo struct {
	byProviderID map[string]*subscription.Subscription
	bySID        map[string]*subscription.Subscription
	nextID       uint
	updateCalls  []bool // includeOffer flag per Update call
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		byProviderID: make(map[string]*subscription.Subscription),
		bySID:        make(map[string]*subscription.Subscription),
		nextID:       1,
	}
}

func (r *fakeSubscriptionRepo) Create(_ context.Context, sub *subscription.Subscription) error {
	if err := sub.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.byProviderID[sub.ProviderID()] = sub
	r.bySID[sub.SID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) GetByID(_ context.Context, _ uint) (*subscription.Subscription, error) {
	return nil, nil
}

func (r *fakeSubscriptionRepo) GetBySID(_ context.Context, sid string) (*subscription.Subscription, error) {
	return r.bySID[sid], nil
}

func (r *fakeSubscriptionRepo) GetByProviderID(_ context.Context, providerID string) (*subscription.Subscription, error) {
	return r.byProviderID[providerID], nil
}

func (r *fakeSubscriptionRepo) GetByMemberSID(_ context.Context, memberSID string) ([]*subscription.Subscription, error) {
	var out []*subscription.Subscription
	for _, sub := range r.bySID {
		if sub.MemberSID() == memberSID {
			out = append(out, sub)
		}
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) Update(_ context.Context, sub *subscription.Subscription, includeOffer bool) error {
	r.updateCalls = append(r.updateCalls, includeOffer)
	r.byProviderID[sub.ProviderID()] = sub
	r.bySID[sub.SID()] = sub
	return nil
}

func (r *fakeSubscriptionRepo) List(_ context.Context, _ subscription.Filter) ([]*subscription.Subscription, int64, error) {
	return nil, 0, nil
}

type fakeOfferRepo struct {
	bySID      map[string]*offer.Offer
	byCouponID map[string]*offer.Offer
	nextID     uint
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{
		bySID:      make(map[string]*offer.Offer),
		byCouponID: make(map[string]*offer.Offer),
		nextID:     1,
	}
}

func (r *fakeOfferRepo) Create(_ context.Context, off *offer.Offer) error {
	if err := off.SetID(r.nextID); err != nil {
		return err
	}
	r.nextID++
	r.bySID[off.SID()] = off
	if off.CouponID() != "" {
		r.byCouponID[off.CouponID()] = off
	}
	return nil
}

func (r *fakeOfferRepo) GetByID(_ context.Context, _ uint) (*offer.Offer, error) { return nil, nil }

func (r *fakeOfferRepo) GetBySID(_ context.Context, sid string) (*offer.Offer, error) {
	return r.bySID[sid], nil
}

func (r *fakeOfferRepo) GetByCouponID(_ context.Context, couponID string) (*offer.Offer, error) {
	return r.byCouponID[couponID], nil
}

func (r *fakeOfferRepo) GetByCode(_ context.Context, _ string) (*offer.Offer, error) {
	return nil, nil
}

func (r *fakeOfferRepo) Update(_ context.Context, off *offer.Offer) error {
	r.bySID[off.SID()] = off
	return nil
}

func (r *fakeOfferRepo) List(_ context.Context, _ offer.Filter) ([]*offer.Offer, int64, error) {
	return nil, 0, nil
}

type fakeRedemptionRepo struct {
	redemptions []*offer.Redemption
	nextID      uint
}

func (r *fakeRedemptionRepo) Create(_ context.Context, redemption *offer.Redemption) error {
	r.nextID++
	if err := redemption.SetID(r.nextID); err != nil {
		return err
	}
	r.redemptions = append(r.redemptions, redemption)
	return nil
}

func (r *fakeRedemptionRepo) GetBySubscriptionSID(_ context.Context, sid string) ([]*offer.Redemption, error) {
	var out []*offer.Redemption
	for _, red := range r.redemptions {
		if red.SubscriptionSID() == sid {
			out = append(out, red)
		}
	}
	return out, nil
}

func (r *fakeRedemptionRepo) CountByOfferSID(_ context.Context, offerSID string) (int64, error) {
	var n int64
	for _, red := range r.redemptions {
		if red.OfferSID() == offerSID {
			n++
		}
	}
	return n, nil
}

type fakeCouponResolver struct {
	resolve func(ctx context.Context, coupon offer.CouponData) (*offer.Offer, error)
}

func (r *fakeCouponResolver) EnsureOfferForCoupon(ctx context.Context, coupon offer.CouponData) (*offer.Offer, error) {
	return r.resolve(ctx, coupon)
}

type fakeDeduplicator struct {
	seen     map[string]bool
	released []string
}

func (d *fakeDeduplicator) MarkProcessed(_ context.Context, eventID string) (bool, error) {
	if d.seen == nil {
		d.seen = make(map[string]bool)
	}
	duplicate := d.seen[eventID]
	d.seen[eventID] = true
	return duplicate, nil
}

func (d *fakeDeduplicator) Release(_ context.Context, eventID string) error {
	delete(d.seen, eventID)
	d.released = append(d.released, eventID)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingDispatcher struct {
	events []sharedevents.DomainEvent
}

func (d *recordingDispatcher) Publish(event sharedevents.DomainEvent) error {
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) PublishAll(events []sharedevents.DomainEvent) error {
	d.events = append(d.events, events...)
	return nil
}

func (d *recordingDispatcher) Subscribe(_ string, _ sharedevents.EventHandler) error {
	return nil
}

func (d *recordingDispatcher) eventTypes() []string {
	var types []string
	for _, e := range d.events {
		types = append(types, e.GetEventType())
	}
	return types
}

// --- fixture ---

type syncFixture struct {
	useCase     *SyncSubscriptionUseCase
	subs        *fakeSubscriptionRepo
	offers      *fakeOfferRepo
	redemptions *fakeRedemptionRepo
	dispatcher  *recordingDispatcher
	resolver    *fakeCouponResolver
	dedup       *fakeDeduplicator
}

func newSyncFixture(t *testing.T) *syncFixture {
	t.Helper()
	subs := newFakeSubscriptionRepo()
	offers := newFakeOfferRepo()
	redemptions := &fakeRedemptionRepo{}
	dispatcher := &recordingDispatcher{}
	dedup := &fakeDeduplicator{}
	resolver := &fakeCouponResolver{
		resolve: func(_ context.Context, _ offer.CouponData) (*offer.Offer, error) {
			return nil, nil
		},
	}
	uc := NewSyncSubscriptionUseCase(
		subs, offers, redemptions, resolver, dedup,
		passthroughTx{}, dispatcher, logger.NewLogger(),
	)
	return &syncFixture{
		useCase:     uc,
		subs:        subs,
		offers:      offers,
		redemptions: redemptions,
		dispatcher:  dispatcher,
		resolver:    resolver,
		dedup:       dedup,
	}
}

func (f *syncFixture) seedOffer(t *testing.T, couponID string) *offer.Offer {
	t.Helper()
	off, err := offer.NewOffer(offer.NewOfferParams{
		Name:           "Seeded",
		Type:           "percent",
		Amount:         20,
		Duration:       "once",
		RedemptionType: "signup",
		CouponID:       couponID,
	})
	require.NoError(t, err)
	require.NoError(t, f.offers.Create(context.Background(), off))
	f.resolver.resolve = func(_ context.Context, coupon offer.CouponData) (*offer.Offer, error) {
		if coupon.CouponID == couponID {
			return off, nil
		}
		return nil, nil
	}
	return off
}

func baseCommand() SyncSubscriptionCommand {
	return SyncSubscriptionCommand{
		MemberSID:     "mem_test0001",
		ProviderID:    "provider_sub_1",
		Status:        "active",
		PriceAmount:   500,
		PriceInterval: "month",
		PriceCurrency: "usd",
		StartDate:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

// --- tests ---

func TestSyncSubscription_NewSignupWithCoupon(t *testing.T) {
	f := newSyncFixture(t)
	off := f.seedOffer(t, "coupon_friday")
	discountStart := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_friday"}
	cmd.DiscountStart = &discountStart

	result, err := f.useCase.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.Equal(t, "set", result.OfferTransition)
	require.NotNil(t, result.OfferSID)
	assert.Equal(t, off.SID(), *result.OfferSID)
	assert.True(t, result.RedemptionFired)

	require.Len(t, f.redemptions.redemptions, 1)
	assert.Equal(t, discountStart, f.redemptions.redemptions[0].RedeemedAt(), "redemption is stamped at coupon start")
	assert.Equal(t, 1, off.RedemptionCount())
	assert.Contains(t, f.dispatcher.eventTypes(), "subscription.linked")
	assert.Contains(t, f.dispatcher.eventTypes(), "offer.redeemed")
}

func TestSyncSubscription_ReprocessingSamePayloadIsIdempotent(t *testing.T) {
	f := newSyncFixture(t)
	f.seedOffer(t, "coupon_friday")

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_friday"}

	first, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)
	second, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	assert.True(t, first.RedemptionFired)
	assert.False(t, second.RedemptionFired, "reapplying the same payload must not double-count the redemption")
	assert.Equal(t, "set", second.OfferTransition)
	assert.Equal(t, *first.OfferSID, *second.OfferSID)
	assert.Len(t, f.redemptions.redemptions, 1)
}

func TestSyncSubscription_DuplicateEventSkipped(t *testing.T) {
	f := newSyncFixture(t)

	cmd := baseCommand()
	cmd.EventID = "evt_123"

	first, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Len(t, f.subs.updateCalls, 0)
}

func TestSyncSubscription_FailedSyncDoesNotSuppressRedelivery(t *testing.T) {
	f := newSyncFixture(t)
	f.resolver.resolve = func(_ context.Context, _ offer.CouponData) (*offer.Offer, error) {
		return nil, assert.AnError
	}

	cmd := baseCommand()
	cmd.EventID = "evt_retry"
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_any"}

	_, err := f.useCase.Execute(context.Background(), cmd)
	require.Error(t, err)
	assert.Equal(t, []string{"evt_retry"}, f.dedup.released, "a failed sync must give its event claim back")

	// The provider redelivers the same event once the fault clears.
	f.seedOffer(t, "coupon_any")
	result, err := f.useCase.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.False(t, result.Duplicate, "redelivery of a failed event must be processed")
	assert.True(t, result.Created)
}

func TestSyncSubscription_IncompatibleCouponDowngrades(t *testing.T) {
	f := newSyncFixture(t)
	f.resolver.resolve = func(_ context.Context, coupon offer.CouponData) (*offer.Offer, error) {
		return nil, offer.NewIncompatibleCouponError(coupon.CouponID, "repeating coupon without a month count")
	}

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_weird"}

	result, err := f.useCase.Execute(context.Background(), cmd)

	require.NoError(t, err, "unrepresentable coupons must not abort the sync")
	assert.Equal(t, "cleared", result.OfferTransition)
	assert.Nil(t, result.OfferSID)
	assert.False(t, result.RedemptionFired)
}

func TestSyncSubscription_ResolverInfraErrorPropagates(t *testing.T) {
	f := newSyncFixture(t)
	f.resolver.resolve = func(_ context.Context, _ offer.CouponData) (*offer.Offer, error) {
		return nil, assert.AnError
	}

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_any"}

	_, err := f.useCase.Execute(context.Background(), cmd)
	assert.Error(t, err)
}

func TestSyncSubscription_ActiveTrialPreservesOffer(t *testing.T) {
	f := newSyncFixture(t)
	off := f.seedOffer(t, "coupon_trial")
	trialEnd := time.Now().UTC().Add(10 * 24 * time.Hour)

	// First sync attaches the offer via its coupon.
	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_trial"}
	cmd.Status = "trialing"
	cmd.TrialEndAt = &trialEnd
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	// A later payload drops the coupon but the trial is still running.
	cmd2 := baseCommand()
	cmd2.Status = "trialing"
	cmd2.TrialEndAt = &trialEnd

	result, err := f.useCase.Execute(context.Background(), cmd2)

	require.NoError(t, err)
	assert.Equal(t, "unchanged", result.OfferTransition)
	require.NotNil(t, result.OfferSID)
	assert.Equal(t, off.SID(), *result.OfferSID)
	require.Len(t, f.subs.updateCalls, 1)
	assert.False(t, f.subs.updateCalls[0], "unchanged transitions must omit the offer column from the update")
}

func TestSyncSubscription_StoredTrialPreservesOfferWhenPayloadOmitsTrial(t *testing.T) {
	f := newSyncFixture(t)
	off := f.seedOffer(t, "coupon_trial")
	trialEnd := time.Now().UTC().Add(10 * 24 * time.Hour)

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_trial"}
	cmd.Status = "trialing"
	cmd.TrialEndAt = &trialEnd
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	// A later payload carries neither coupon nor trial fields. The stored
	// trial is still running, so the offer must survive on the strength of
	// the record as it was stored, not as the payload rewrites it.
	cmd2 := baseCommand()

	result, err := f.useCase.Execute(context.Background(), cmd2)

	require.NoError(t, err)
	assert.Equal(t, "unchanged", result.OfferTransition)
	require.NotNil(t, result.OfferSID)
	assert.Equal(t, off.SID(), *result.OfferSID)
	require.Len(t, f.subs.updateCalls, 1)
	assert.False(t, f.subs.updateCalls[0])
}

func TestSyncSubscription_ExpiredTrialClearsOffer(t *testing.T) {
	f := newSyncFixture(t)
	f.seedOffer(t, "coupon_trial")
	trialEnd := time.Now().UTC().Add(-time.Hour)

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_trial"}
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	cmd2 := baseCommand()
	cmd2.TrialEndAt = &trialEnd

	result, err := f.useCase.Execute(context.Background(), cmd2)

	require.NoError(t, err)
	assert.Equal(t, "cleared", result.OfferTransition)
	assert.Nil(t, result.OfferSID)
	require.Len(t, f.subs.updateCalls, 1)
	assert.True(t, f.subs.updateCalls[0])
}

func TestSyncSubscription_ExplicitOfferReplacesExisting(t *testing.T) {
	f := newSyncFixture(t)
	f.seedOffer(t, "coupon_signup")

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_signup"}
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	retention, err := offer.NewOffer(offer.NewOfferParams{
		Name:           "Stay With Us",
		Type:           "percent",
		Amount:         50,
		Duration:       "forever",
		RedemptionType: "retention",
	})
	require.NoError(t, err)
	require.NoError(t, f.offers.Create(context.Background(), retention))

	retentionSID := retention.SID()
	cmd2 := baseCommand()
	cmd2.ExplicitOfferSID = &retentionSID

	result, err := f.useCase.Execute(context.Background(), cmd2)

	require.NoError(t, err)
	assert.Equal(t, "set", result.OfferTransition)
	require.NotNil(t, result.OfferSID)
	assert.Equal(t, retentionSID, *result.OfferSID)
	assert.True(t, result.RedemptionFired)
	assert.Len(t, f.redemptions.redemptions, 2)
}

func TestSyncSubscription_StatusChangeEmitsEvent(t *testing.T) {
	f := newSyncFixture(t)

	cmd := baseCommand()
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	cmd2 := baseCommand()
	cmd2.Status = "past_due"
	_, err = f.useCase.Execute(context.Background(), cmd2)
	require.NoError(t, err)

	assert.Contains(t, f.dispatcher.eventTypes(), "subscription.status_changed")
}

func TestSyncSubscription_InvalidPriceRejected(t *testing.T) {
	f := newSyncFixture(t)

	cmd := baseCommand()
	cmd.PriceInterval = "fortnight"

	_, err := f.useCase.Execute(context.Background(), cmd)
	assert.Error(t, err)
}
