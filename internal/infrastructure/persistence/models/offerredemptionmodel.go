package models

import (
	"time"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
)

// OfferRedemptionModel records each time an offer attached to a subscription.
// Append-only audit table, no soft delete.
type OfferRedemptionModel struct {
	ID              uint      `gorm:"primarykey"`
	SID             string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: red_xxx"`
	OfferSID        string    `gorm:"column:offer_sid;not null;size:50;index:idx_redemption_offer"`
	MemberSID       string    `gorm:"column:member_sid;size:50;index:idx_redemption_member"`
	SubscriptionSID string    `gorm:"column:subscription_sid;not null;size:50;index:idx_redemption_subscription"`
	RedeemedAt      time.Time `gorm:"not null;index:idx_redeemed_at"`
	CreatedAt       time.Time
}

// TableName specifies the table name for GORM
func (OfferRedemptionModel) TableName() string {
	return constants.TableOfferRedemptions
}
