package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/subscription"
	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/infrastructure/persistence/models"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.OfferModel{}, &models.SubscriptionModel{}, &models.OfferRedemptionModel{})
	require.NoError(t, err)

	return db
}

func testProviderState(t *testing.T) subscription.ProviderState {
	t.Helper()
	price, err := vo.NewPlanPrice(500, vo.IntervalMonth, "usd", "Monthly")
	require.NoError(t, err)

	periodEnd := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return subscription.ProviderState{
		Status:           vo.StatusActive,
		Price:            price,
		StartDate:        time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		CurrentPeriodEnd: &periodEnd,
	}
}

func createTestSubscription(t *testing.T, providerID string) *subscription.Subscription {
	t.Helper()
	sub, err := subscription.NewSubscription("mem_repo0000001", providerID, testProviderState(t))
	require.NoError(t, err)
	return sub
}

func TestSubscriptionRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("create assigns database ID", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_create")

		err := repo.Create(ctx, sub)
		assert.NoError(t, err)
		assert.NotZero(t, sub.ID())
	})

	t.Run("get by provider ID round-trips provider fields", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_roundtrip")
		require.NoError(t, repo.Create(ctx, sub))

		found, err := repo.GetByProviderID(ctx, "provider_sub_roundtrip")
		require.NoError(t, err)
		require.NotNil(t, found)

		assert.Equal(t, sub.SID(), found.SID())
		assert.Equal(t, sub.MemberSID(), found.MemberSID())
		assert.Equal(t, vo.StatusActive, found.Status())
		assert.Equal(t, int64(500), found.Price().Amount())
		assert.Equal(t, vo.IntervalMonth, found.Price().Interval())
		require.NotNil(t, found.CurrentPeriodEnd())
		assert.Nil(t, found.OfferSID())
	})

	t.Run("unknown SID returns nil without error", func(t *testing.T) {
		found, err := repo.GetBySID(ctx, "sub_missing00001")
		assert.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("duplicate provider ID fails", func(t *testing.T) {
		first := createTestSubscription(t, "provider_sub_dup")
		require.NoError(t, repo.Create(ctx, first))

		second := createTestSubscription(t, "provider_sub_dup")
		err := repo.Create(ctx, second)
		assert.Error(t, err)
	})
}

func TestSubscriptionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	t.Run("update with includeOffer persists the offer column", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_offer")
		require.NoError(t, repo.Create(ctx, sub))

		sub.ApplyOfferTransition(subscription.OfferTransition{
			Kind:     subscription.OfferSet,
			OfferSID: "off_repo0000001",
		})
		require.NoError(t, repo.Update(ctx, sub, true))

		found, err := repo.GetBySID(ctx, sub.SID())
		require.NoError(t, err)
		require.NotNil(t, found.OfferSID())
		assert.Equal(t, "off_repo0000001", *found.OfferSID())
	})

	t.Run("update without includeOffer leaves the offer column untouched", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_keep")
		require.NoError(t, repo.Create(ctx, sub))

		sub.ApplyOfferTransition(subscription.OfferTransition{
			Kind:     subscription.OfferSet,
			OfferSID: "off_repo0000002",
		})
		require.NoError(t, repo.Update(ctx, sub, true))

		// A later sync that resolved to Unchanged rewrites provider fields
		// only; the stored offer must survive.
		state := testProviderState(t)
		state.Status = vo.StatusPastDue
		require.NoError(t, sub.SyncProviderState(state))
		require.NoError(t, repo.Update(ctx, sub, false))

		found, err := repo.GetBySID(ctx, sub.SID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusPastDue, found.Status())
		require.NotNil(t, found.OfferSID())
		assert.Equal(t, "off_repo0000002", *found.OfferSID())
	})

	t.Run("update leaves stored metadata alone", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_meta")
		require.NoError(t, repo.Create(ctx, sub))

		// Metadata is written at link time only; seed some directly and make
		// sure a sync update does not null it out.
		seeded := []byte(`{"source":"import"}`)
		require.NoError(t, db.Model(&models.SubscriptionModel{}).
			Where("id = ?", sub.ID()).
			Update("metadata", seeded).Error)

		state := testProviderState(t)
		state.Status = vo.StatusPastDue
		require.NoError(t, sub.SyncProviderState(state))
		require.NoError(t, repo.Update(ctx, sub, false))

		found, err := repo.GetBySID(ctx, sub.SID())
		require.NoError(t, err)
		assert.Equal(t, vo.StatusPastDue, found.Status())
		assert.Equal(t, "import", found.Metadata()["source"])
	})

	t.Run("updating an unsaved subscription errors", func(t *testing.T) {
		sub := createTestSubscription(t, "provider_sub_ghost")
		err := repo.Update(ctx, sub, false)
		assert.Error(t, err)
	})
}

func TestSubscriptionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	for _, providerID := range []string{"provider_list_1", "provider_list_2", "provider_list_3"} {
		sub := createTestSubscription(t, providerID)
		require.NoError(t, repo.Create(ctx, sub))
	}

	t.Run("filter by member SID", func(t *testing.T) {
		memberSID := "mem_repo0000001"
		subs, total, err := repo.List(ctx, subscription.Filter{MemberSID: &memberSID})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, subs, 3)
	})

	t.Run("pagination limits results", func(t *testing.T) {
		memberSID := "mem_repo0000001"
		subs, total, err := repo.List(ctx, subscription.Filter{MemberSID: &memberSID, Page: 1, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, subs, 2)
	})

	t.Run("filter by offer SID", func(t *testing.T) {
		offerSID := "off_repo_list01"
		subs, total, err := repo.List(ctx, subscription.Filter{OfferSID: &offerSID})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, subs)
	})
}

func TestSubscriptionRepository_GetByMemberSID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, logger.NewLogger())
	ctx := context.Background()

	sub := createTestSubscription(t, "provider_member_1")
	require.NoError(t, repo.Create(ctx, sub))

	subs, err := repo.GetByMemberSID(ctx, "mem_repo0000001")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, sub.SID(), subs[0].SID())

	none, err := repo.GetByMemberSID(ctx, "mem_nobody00001")
	require.NoError(t, err)
	assert.Empty(t, none)
}
