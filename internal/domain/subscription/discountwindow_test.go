package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	offervo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
)

// --- helpers ---

func newPlanPrice(t *testing.T) vo.PlanPrice {
	t.Helper()
	price, err := vo.NewPlanPrice(500, vo.IntervalMonth, "usd", "Monthly")
	require.NoError(t, err)
	return price
}

type subOverrides struct {
	status        vo.SubscriptionStatus
	startDate     time.Time
	discountStart *time.Time
	discountEnd   *time.Time
	trialStartAt  *time.Time
	trialEndAt    *time.Time
	offerSID      *string
}

func reconstructSub(t *testing.T, o subOverrides) *Subscription {
	t.Helper()
	if o.status == "" {
		o.status = vo.StatusActive
	}
	if o.startDate.IsZero() {
		o.startDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	}
	sub, err := ReconstructSubscription(ReconstructParams{
		ID:            1,
		SID:           "sub_test00000001",
		MemberSID:     "mem_test00000001",
		ProviderID:    "provider_sub_1",
		Status:        o.status,
		Price:         newPlanPrice(t),
		StartDate:     o.startDate,
		DiscountStart: o.discountStart,
		DiscountEnd:   o.discountEnd,
		TrialStartAt:  o.trialStartAt,
		TrialEndAt:    o.trialEndAt,
		OfferSID:      o.offerSID,
		Version:       1,
		CreatedAt:     o.startDate,
		UpdatedAt:     o.startDate,
	})
	require.NoError(t, err)
	return sub
}

type offerOverrides struct {
	offerType        offervo.OfferType
	amount           int64
	duration         offervo.Duration
	durationInMonths int
	redemptionType   offervo.RedemptionType
}

func reconstructOffer(t *testing.T, o offerOverrides) *offer.Offer {
	t.Helper()
	if o.offerType == "" {
		o.offerType = offervo.TypePercent
	}
	if o.amount == 0 {
		o.amount = 20
	}
	if o.duration == "" && !o.offerType.IsTrialStyle() {
		o.duration = offervo.DurationOnce
	}
	if o.redemptionType == "" {
		o.redemptionType = offervo.RedemptionSignup
	}
	off, err := offer.ReconstructOffer(offer.ReconstructParams{
		ID:               1,
		SID:              "off_test00000001",
		Name:             "Test Offer",
		Type:             o.offerType,
		Amount:           o.amount,
		Duration:         o.duration,
		DurationInMonths: o.durationInMonths,
		RedemptionType:   o.redemptionType,
		Cadence:          offervo.CadenceMonth,
		Currency:         "usd",
		Active:           true,
		Version:          1,
		CreatedAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:        time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return off
}

func timePtr(t time.Time) *time.Time { return &t }

func strPtr(s string) *string { return &s }

// =====================================================================
// ResolveDiscountWindow
// =====================================================================

func TestResolveDiscountWindow_ProviderReportedVerbatim(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{discountStart: &start, discountEnd: &end})

	window := ResolveDiscountWindow(sub, nil, now)

	require.NotNil(t, window)
	assert.Equal(t, start, *window.Start)
	assert.Equal(t, end, *window.End)
}

func TestResolveDiscountWindow_ProviderWindowInPastStillReturned(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{discountStart: &start, discountEnd: &end})

	window := ResolveDiscountWindow(sub, nil, now)

	require.NotNil(t, window, "past provider window must still be reported truthfully")
	assert.Equal(t, end, *window.End)
}

func TestResolveDiscountWindow_ProviderForeverDiscount(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{discountStart: &start})

	window := ResolveDiscountWindow(sub, nil, now)

	require.NotNil(t, window)
	assert.Equal(t, start, *window.Start)
	assert.Nil(t, window.End, "nil discount end means the discount never expires")
}

func TestResolveDiscountWindow_ProviderWinsOverRepeatingOffer(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{
		startDate:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		discountStart: &start,
		discountEnd:   &end,
	})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationRepeating, durationInMonths: 12})

	window := ResolveDiscountWindow(sub, off, now)

	require.NotNil(t, window)
	assert.Equal(t, start, *window.Start, "provider data must win over legacy reconstruction")
	assert.Equal(t, end, *window.End)
}

func TestResolveDiscountWindow_TrialStyleUsesTrialFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trialStart := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{trialStartAt: &trialStart, trialEndAt: &trialEnd})
	off := reconstructOffer(t, offerOverrides{offerType: offervo.TypeFreeMonths, amount: 3})

	window := ResolveDiscountWindow(sub, off, now)

	require.NotNil(t, window)
	assert.Equal(t, trialStart, *window.Start)
	assert.Equal(t, trialEnd, *window.End)
}

func TestResolveDiscountWindow_TrialStyleElapsedStillReturned(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{trialEndAt: &trialEnd})
	off := reconstructOffer(t, offerOverrides{offerType: offervo.TypeTrial, amount: 14})

	window := ResolveDiscountWindow(sub, off, now)

	require.NotNil(t, window, "elapsed trial windows are still reported; liveness is the caller's concern")
	assert.Nil(t, window.Start)
	assert.Equal(t, trialEnd, *window.End)
}

func TestResolveDiscountWindow_TrialStyleWithoutTrialEnd(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{})
	off := reconstructOffer(t, offerOverrides{offerType: offervo.TypeFreeMonths, amount: 1})

	assert.Nil(t, ResolveDiscountWindow(sub, off, now))
}

func TestResolveDiscountWindow_LegacyOnceNotReconstructable(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationOnce})

	assert.Nil(t, ResolveDiscountWindow(sub, off, now))
}

func TestResolveDiscountWindow_LegacyForever(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	startDate := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{startDate: startDate})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationForever})

	window := ResolveDiscountWindow(sub, off, now)

	require.NotNil(t, window)
	assert.Equal(t, startDate, *window.Start)
	assert.Nil(t, window.End)
}

func TestResolveDiscountWindow_LegacyRepeatingStillOpen(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	startDate := now.AddDate(0, 0, -90)

	sub := reconstructSub(t, subOverrides{startDate: startDate})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationRepeating, durationInMonths: 6})

	window := ResolveDiscountWindow(sub, off, now)

	require.NotNil(t, window)
	assert.Equal(t, startDate, *window.Start)
	require.NotNil(t, window.End)
	assert.Equal(t, startDate.AddDate(0, 6, 0), *window.End)
	assert.True(t, window.End.After(now))
}

func TestResolveDiscountWindow_LegacyRepeatingClosed(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	startDate := now.AddDate(0, 0, -365)

	sub := reconstructSub(t, subOverrides{startDate: startDate})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationRepeating, durationInMonths: 6})

	assert.Nil(t, ResolveDiscountWindow(sub, off, now))
}

func TestResolveDiscountWindow_LegacyRepeatingBoundaryInstant(t *testing.T) {
	startDate := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := startDate.AddDate(0, 6, 0)

	sub := reconstructSub(t, subOverrides{startDate: startDate})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationRepeating, durationInMonths: 6})

	assert.Nil(t, ResolveDiscountWindow(sub, off, end), "window closes exactly at its end instant")
	assert.NotNil(t, ResolveDiscountWindow(sub, off, end.Add(-time.Second)))
}

func TestResolveDiscountWindow_LegacyRepeatingZeroMonths(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{})
	off := reconstructOffer(t, offerOverrides{duration: offervo.DurationRepeating, durationInMonths: 0})

	assert.Nil(t, ResolveDiscountWindow(sub, off, now))
}

func TestResolveDiscountWindow_NoDiscountNoOffer(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	sub := reconstructSub(t, subOverrides{})

	assert.Nil(t, ResolveDiscountWindow(sub, nil, now))
	assert.Nil(t, ResolveDiscountWindow(nil, nil, now))
}
