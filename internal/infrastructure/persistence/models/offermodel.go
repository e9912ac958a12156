package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
)

// OfferModel represents the database persistence model for offers
type OfferModel struct {
	ID               uint   `gorm:"primarykey"`
	SID              string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: off_xxx"`
	Name             string `gorm:"not null;size:191"`
	Code             string `gorm:"size:191;index:idx_offer_code"`
	Type             string `gorm:"not null;size:20"`
	Amount           int64  `gorm:"not null"`
	Duration         string `gorm:"size:20"`
	DurationInMonths int    `gorm:"default:0"`
	RedemptionType   string `gorm:"not null;size:20;default:signup;index:idx_redemption_type"`
	Cadence          string `gorm:"size:10"`
	Currency         string `gorm:"size:10"`
	CouponID         string `gorm:"size:255;index:idx_coupon_id"`
	Active           bool   `gorm:"not null;default:true;index:idx_offer_active"`
	RedemptionCount  int    `gorm:"not null;default:0"`
	Version          int    `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (OfferModel) TableName() string {
	return constants.TableOffers
}

// BeforeCreate hook for GORM
func (o *OfferModel) BeforeCreate(tx *gorm.DB) error {
	if o.Version == 0 {
		o.Version = 1
	}
	return nil
}
