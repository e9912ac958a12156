package subscription

import "context"

// Repository persists subscriptions. Lookups return (nil, nil) when no row
// matches.
type Repository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	GetBySID(ctx context.Context, sid string) (*Subscription, error)
	GetByProviderID(ctx context.Context, providerID string) (*Subscription, error)
	GetByMemberSID(ctx context.Context, memberSID string) ([]*Subscription, error)
	// Update persists the aggregate. When the offer transition left the
	// recorded offer untouched, the offer column must be omitted from the
	// generated UPDATE so concurrent writers cannot be clobbered.
	Update(ctx context.Context, subscription *Subscription, includeOffer bool) error
	List(ctx context.Context, filter Filter) ([]*Subscription, int64, error)
}

// Filter narrows subscription listings.
type Filter struct {
	MemberSID *string
	Status    *string
	OfferSID  *string
	Page      int
	PageSize  int
}
