package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/logger"
)

func TestGetMemberSubscriptions_ProjectsNextPayment(t *testing.T) {
	f := newSyncFixture(t)
	f.seedOffer(t, "coupon_friday")
	discountStart := time.Now().UTC().Add(-24 * time.Hour)

	cmd := baseCommand()
	cmd.Coupon = &offer.CouponData{CouponID: "coupon_friday"}
	cmd.DiscountStart = &discountStart
	_, err := f.useCase.Execute(context.Background(), cmd)
	require.NoError(t, err)

	readUC := NewGetMemberSubscriptionsUseCase(f.subs, f.offers, logger.NewLogger())
	result, err := readUC.Execute(context.Background(), GetMemberSubscriptionsQuery{MemberSID: "mem_test0001"})

	require.NoError(t, err)
	require.Len(t, result, 1)
	sub := result[0]
	require.NotNil(t, sub.NextPayment)
	assert.Equal(t, int64(500), sub.NextPayment.OriginalAmount)
	assert.Equal(t, int64(400), sub.NextPayment.Amount)
	require.NotNil(t, sub.NextPayment.Discount)
	assert.Equal(t, "percent", sub.NextPayment.Discount.Type)
}

func TestGetMemberSubscriptions_UnknownMemberIsEmpty(t *testing.T) {
	f := newSyncFixture(t)

	readUC := NewGetMemberSubscriptionsUseCase(f.subs, f.offers, logger.NewLogger())
	result, err := readUC.Execute(context.Background(), GetMemberSubscriptionsQuery{MemberSID: "mem_nobody"})

	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetMemberSubscriptions_RequiresMemberSID(t *testing.T) {
	f := newSyncFixture(t)

	readUC := NewGetMemberSubscriptionsUseCase(f.subs, f.offers, logger.NewLogger())
	_, err := readUC.Execute(context.Background(), GetMemberSubscriptionsQuery{})

	assert.Error(t, err)
}
