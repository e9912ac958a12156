package offer

import "context"

// Repository persists offers. Lookups return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByID(ctx context.Context, id uint) (*Offer, error)
	GetBySID(ctx context.Context, sid string) (*Offer, error)
	GetByCouponID(ctx context.Context, couponID string) (*Offer, error)
	GetByCode(ctx context.Context, code string) (*Offer, error)
	Update(ctx context.Context, offer *Offer) error
	List(ctx context.Context, filter Filter) ([]*Offer, int64, error)
}

// Filter narrows offer listings.
type Filter struct {
	RedemptionType *string
	Active         *bool
	Page           int
	PageSize       int
}

// RedemptionRepository records offer redemptions for auditing.
type RedemptionRepository interface {
	Create(ctx context.Context, redemption *Redemption) error
	GetBySubscriptionSID(ctx context.Context, subscriptionSID string) ([]*Redemption, error)
	CountByOfferSID(ctx context.Context, offerSID string) (int64, error)
}
