package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID                uint       `gorm:"primarykey"`
	SID               string     `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	MemberSID         string     `gorm:"column:member_sid;not null;size:50;index:idx_member_subscription"`
	ProviderID        string     `gorm:"uniqueIndex;not null;size:255;comment:billing provider subscription ID"`
	Status            string     `gorm:"not null;size:20;index:idx_status"`
	PriceAmount       int64      `gorm:"not null"`
	PriceInterval     string     `gorm:"not null;size:10"`
	PriceCurrency     string     `gorm:"not null;size:10"`
	PriceNickname     string     `gorm:"size:255"`
	StartDate         time.Time  `gorm:"not null"`
	CurrentPeriodEnd  *time.Time `gorm:"index:idx_period_end"`
	CancelAtPeriodEnd bool       `gorm:"default:false"`
	DiscountStart     *time.Time
	DiscountEnd       *time.Time
	TrialStartAt      *time.Time
	TrialEndAt        *time.Time
	OfferSID          *string `gorm:"column:offer_sid;size:50;index:idx_offer_subscription"`
	Metadata          datatypes.JSON
	Version           int `gorm:"not null;default:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (s *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if s.Version == 0 {
		s.Version = 1
	}
	return nil
}
