package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
)

func validProviderState(t *testing.T) ProviderState {
	t.Helper()
	return ProviderState{
		Status:    vo.StatusActive,
		Price:     newPlanPrice(t),
		StartDate: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestNewSubscription_Success(t *testing.T) {
	sub, err := NewSubscription("mem_abc123", "provider_sub_1", validProviderState(t))

	require.NoError(t, err)
	assert.NotEmpty(t, sub.SID())
	assert.Contains(t, sub.SID(), "sub_")
	assert.Equal(t, "mem_abc123", sub.MemberSID())
	assert.Equal(t, "provider_sub_1", sub.ProviderID())
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.Nil(t, sub.OfferSID())
	assert.Equal(t, 1, sub.Version())
}

func TestNewSubscription_MissingMember(t *testing.T) {
	_, err := NewSubscription("", "provider_sub_1", validProviderState(t))
	assert.Error(t, err)
}

func TestNewSubscription_MissingProviderID(t *testing.T) {
	_, err := NewSubscription("mem_abc123", "", validProviderState(t))
	assert.Error(t, err)
}

func TestNewSubscription_InvalidStatus(t *testing.T) {
	state := validProviderState(t)
	state.Status = "resurrected"

	_, err := NewSubscription("mem_abc123", "provider_sub_1", state)
	assert.Error(t, err)
}

func TestSubscription_SyncProviderState(t *testing.T) {
	sub := reconstructSub(t, subOverrides{})
	versionBefore := sub.Version()

	end := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	discountStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	state := validProviderState(t)
	state.Status = vo.StatusPastDue
	state.CurrentPeriodEnd = &end
	state.DiscountStart = &discountStart
	state.CancelAtPeriodEnd = true

	require.NoError(t, sub.SyncProviderState(state))

	assert.Equal(t, vo.StatusPastDue, sub.Status())
	assert.Equal(t, end, *sub.CurrentPeriodEnd())
	assert.Equal(t, discountStart, *sub.DiscountStart())
	assert.True(t, sub.CancelAtPeriodEnd())
	assert.Equal(t, versionBefore+1, sub.Version())
}

func TestSubscription_SyncProviderStateClearsStaleWindows(t *testing.T) {
	// A snapshot without discount or trial data wipes the stored windows;
	// the provider owns those fields outright.
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	trialEnd := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	sub := reconstructSub(t, subOverrides{discountStart: &start, trialEndAt: &trialEnd})

	require.NoError(t, sub.SyncProviderState(validProviderState(t)))

	assert.Nil(t, sub.DiscountStart())
	assert.Nil(t, sub.DiscountEnd())
	assert.Nil(t, sub.TrialEndAt())
}

func TestSubscription_SyncProviderStateInvalidStatus(t *testing.T) {
	sub := reconstructSub(t, subOverrides{})
	state := validProviderState(t)
	state.Status = "bogus"

	assert.Error(t, sub.SyncProviderState(state))
}

func TestSubscription_ApplyOfferTransitionSet(t *testing.T) {
	sub := reconstructSub(t, subOverrides{})
	versionBefore := sub.Version()

	sub.ApplyOfferTransition(OfferTransition{Kind: OfferSet, OfferSID: "off_new00001"})

	require.NotNil(t, sub.OfferSID())
	assert.Equal(t, "off_new00001", *sub.OfferSID())
	assert.Equal(t, versionBefore+1, sub.Version())
}

func TestSubscription_ApplyOfferTransitionCleared(t *testing.T) {
	sub := reconstructSub(t, subOverrides{offerSID: strPtr("off_old00001")})

	sub.ApplyOfferTransition(OfferTransition{Kind: OfferCleared})

	assert.Nil(t, sub.OfferSID())
}

func TestSubscription_ApplyOfferTransitionUnchanged(t *testing.T) {
	sub := reconstructSub(t, subOverrides{offerSID: strPtr("off_old00001")})
	versionBefore := sub.Version()

	sub.ApplyOfferTransition(OfferTransition{Kind: OfferUnchanged})

	require.NotNil(t, sub.OfferSID())
	assert.Equal(t, "off_old00001", *sub.OfferSID())
	assert.Equal(t, versionBefore, sub.Version(), "unchanged must not touch the aggregate at all")
}

func TestSubscription_SetID(t *testing.T) {
	sub, err := NewSubscription("mem_abc123", "provider_sub_1", validProviderState(t))
	require.NoError(t, err)

	require.NoError(t, sub.SetID(42))
	assert.Equal(t, uint(42), sub.ID())
	assert.Error(t, sub.SetID(43), "ID can only be assigned once")
}

func TestSubscription_Validate(t *testing.T) {
	sub := reconstructSub(t, subOverrides{})
	assert.NoError(t, sub.Validate())

	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	broken := reconstructSub(t, subOverrides{discountEnd: &end})
	assert.Error(t, broken.Validate(), "discount end without a start is malformed provider data")
}

func TestSubscription_IsBilling(t *testing.T) {
	for _, status := range []vo.SubscriptionStatus{vo.StatusActive, vo.StatusTrialing, vo.StatusPastDue, vo.StatusUnpaid} {
		assert.True(t, reconstructSub(t, subOverrides{status: status}).IsBilling(), string(status))
	}
	for _, status := range []vo.SubscriptionStatus{vo.StatusCanceled, vo.StatusIncomplete, vo.StatusIncompleteExpired} {
		assert.False(t, reconstructSub(t, subOverrides{status: status}).IsBilling(), string(status))
	}
}
