package offer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
)

func int64Ptr(v int64) *int64 { return &v }

func TestParamsFromCoupon_PercentCoupon(t *testing.T) {
	p, err := ParamsFromCoupon(CouponData{
		CouponID:   "coupon_123",
		Name:       "Spring Sale",
		PercentOff: int64Ptr(25),
		Duration:   "once",
	})

	require.NoError(t, err)
	assert.Equal(t, vo.TypePercent, p.Type)
	assert.Equal(t, int64(25), p.Amount)
	assert.Equal(t, vo.DurationOnce, p.Duration)
	assert.Equal(t, vo.RedemptionSignup, p.RedemptionType)
	assert.Equal(t, "coupon_123", p.CouponID)
}

func TestParamsFromCoupon_FixedCoupon(t *testing.T) {
	p, err := ParamsFromCoupon(CouponData{
		CouponID:         "coupon_456",
		AmountOff:        int64Ptr(300),
		Currency:         "usd",
		Duration:         "repeating",
		DurationInMonths: 3,
	})

	require.NoError(t, err)
	assert.Equal(t, vo.TypeFixed, p.Type)
	assert.Equal(t, int64(300), p.Amount)
	assert.Equal(t, "usd", p.Currency)
	assert.Equal(t, 3, p.DurationInMonths)
}

func TestParamsFromCoupon_NameFallsBackToCouponID(t *testing.T) {
	p, err := ParamsFromCoupon(CouponData{
		CouponID:   "coupon_789",
		PercentOff: int64Ptr(10),
		Duration:   "forever",
	})

	require.NoError(t, err)
	assert.Equal(t, "coupon_789", p.Name)
}

func TestParamsFromCoupon_Incompatible(t *testing.T) {
	tests := []struct {
		name   string
		coupon CouponData
	}{
		{"no identifier", CouponData{PercentOff: int64Ptr(10), Duration: "once"}},
		{"unknown duration", CouponData{CouponID: "c", PercentOff: int64Ptr(10), Duration: "biannual"}},
		{"repeating without months", CouponData{CouponID: "c", PercentOff: int64Ptr(10), Duration: "repeating"}},
		{"percent out of range", CouponData{CouponID: "c", PercentOff: int64Ptr(150), Duration: "once"}},
		{"fixed without currency", CouponData{CouponID: "c", AmountOff: int64Ptr(300), Duration: "once"}},
		{"no discount at all", CouponData{CouponID: "c", Duration: "once"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParamsFromCoupon(tt.coupon)
			require.Error(t, err)
			assert.True(t, IsIncompatibleCoupon(err), "must be classified as an incompatible coupon")
		})
	}
}
