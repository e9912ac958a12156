package offer

import (
	"errors"
	"fmt"

	apperrors "github.com/tigefa4u/Ghost-sub000/internal/shared/errors"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferInactive = errors.New("offer inactive")
	ErrCodeExists    = errors.New("offer code already exists")
)

// NewIncompatibleCouponError reports a provider coupon shape the offer model
// cannot represent (e.g. a repeating coupon with no month count). Callers are
// expected to treat this class as non-fatal during subscription sync.
func NewIncompatibleCouponError(couponID, reason string) error {
	return apperrors.NewValidationError(
		fmt.Sprintf("coupon %s cannot be represented as an offer", couponID),
		reason,
	)
}

// IsIncompatibleCoupon reports whether err marks a structurally incompatible
// coupon, the one lookup failure class that must not abort a sync.
func IsIncompatibleCoupon(err error) bool {
	return apperrors.IsValidationError(err)
}
