package subscription

import (
	"fmt"
	"time"

	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/subscription/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/id"
)

// Subscription represents the subscription aggregate root. It is created the
// first time a provider subscription is linked to a member and mutated on
// every subsequent webhook/poll sync; it never gets deleted, only moves to
// canceled.
type Subscription struct {
	id                uint
	sid               string
	memberSID         string
	providerID        string
	status            vo.SubscriptionStatus
	price             vo.PlanPrice
	startDate         time.Time
	currentPeriodEnd  *time.Time
	cancelAtPeriodEnd bool
	discountStart     *time.Time
	discountEnd       *time.Time
	trialStartAt      *time.Time
	trialEndAt        *time.Time
	offerSID          *string
	metadata          map[string]interface{}
	version           int
	createdAt         time.Time
	updatedAt         time.Time
}

// ProviderState is the provider-reported slice of a subscription snapshot,
// already mapped from provider-native field names.
type ProviderState struct {
	Status            vo.SubscriptionStatus
	Price             vo.PlanPrice
	StartDate         time.Time
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
	DiscountStart     *time.Time
	DiscountEnd       *time.Time
	TrialStartAt      *time.Time
	TrialEndAt        *time.Time
}

// NewSubscription links a provider subscription to a member for the first time.
func NewSubscription(memberSID, providerID string, state ProviderState) (*Subscription, error) {
	if memberSID == "" {
		return nil, fmt.Errorf("member SID is required")
	}
	if providerID == "" {
		return nil, fmt.Errorf("provider subscription ID is required")
	}
	if !vo.ValidStatuses[state.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", state.Status)
	}

	now := time.Now().UTC()
	s := &Subscription{
		sid:               id.MustGenerateWithPrefix(id.PrefixSubscription, id.DefaultLength),
		memberSID:         memberSID,
		providerID:        providerID,
		status:            state.Status,
		price:             state.Price,
		startDate:         state.StartDate.UTC(),
		currentPeriodEnd:  state.CurrentPeriodEnd,
		cancelAtPeriodEnd: state.CancelAtPeriodEnd,
		discountStart:     state.DiscountStart,
		discountEnd:       state.DiscountEnd,
		trialStartAt:      state.TrialStartAt,
		trialEndAt:        state.TrialEndAt,
		metadata:          make(map[string]interface{}),
		version:           1,
		createdAt:         now,
		updatedAt:         now,
	}

	return s, nil
}

// ReconstructParams carries persisted state for rebuilding a subscription.
type ReconstructParams struct {
	ID                uint
	SID               string
	MemberSID         string
	ProviderID        string
	Status            vo.SubscriptionStatus
	Price             vo.PlanPrice
	StartDate         time.Time
	CurrentPeriodEnd  *time.Time
	CancelAtPeriodEnd bool
	DiscountStart     *time.Time
	DiscountEnd       *time.Time
	TrialStartAt      *time.Time
	TrialEndAt        *time.Time
	OfferSID          *string
	Metadata          map[string]interface{}
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p ReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.SID == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	if p.MemberSID == "" {
		return nil, fmt.Errorf("member SID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	if p.Metadata == nil {
		p.Metadata = make(map[string]interface{})
	}

	return &Subscription{
		id:                p.ID,
		sid:               p.SID,
		memberSID:         p.MemberSID,
		providerID:        p.ProviderID,
		status:            p.Status,
		price:             p.Price,
		startDate:         p.StartDate,
		currentPeriodEnd:  p.CurrentPeriodEnd,
		cancelAtPeriodEnd: p.CancelAtPeriodEnd,
		discountStart:     p.DiscountStart,
		discountEnd:       p.DiscountEnd,
		trialStartAt:      p.TrialStartAt,
		trialEndAt:        p.TrialEndAt,
		offerSID:          p.OfferSID,
		metadata:          p.Metadata,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                      { return s.id }
func (s *Subscription) SID() string                   { return s.sid }
func (s *Subscription) MemberSID() string             { return s.memberSID }
func (s *Subscription) ProviderID() string            { return s.providerID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) Price() vo.PlanPrice           { return s.price }
func (s *Subscription) StartDate() time.Time          { return s.startDate }
func (s *Subscription) CurrentPeriodEnd() *time.Time  { return s.currentPeriodEnd }
func (s *Subscription) CancelAtPeriodEnd() bool       { return s.cancelAtPeriodEnd }
func (s *Subscription) DiscountStart() *time.Time     { return s.discountStart }
func (s *Subscription) DiscountEnd() *time.Time       { return s.discountEnd }
func (s *Subscription) TrialStartAt() *time.Time      { return s.trialStartAt }
func (s *Subscription) TrialEndAt() *time.Time        { return s.trialEndAt }
func (s *Subscription) OfferSID() *string             { return s.offerSID }
func (s *Subscription) Metadata() map[string]interface{} { return s.metadata }
func (s *Subscription) Version() int                  { return s.version }
func (s *Subscription) CreatedAt() time.Time          { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time          { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(newID uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if newID == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = newID
	return nil
}

// SyncProviderState overwrites the provider-owned fields with a fresh
// snapshot. The provider is trusted for all of these; no local transition
// rules apply.
func (s *Subscription) SyncProviderState(state ProviderState) error {
	if !vo.ValidStatuses[state.Status] {
		return fmt.Errorf("invalid subscription status: %s", state.Status)
	}

	s.status = state.Status
	s.price = state.Price
	if !state.StartDate.IsZero() {
		s.startDate = state.StartDate.UTC()
	}
	s.currentPeriodEnd = state.CurrentPeriodEnd
	s.cancelAtPeriodEnd = state.CancelAtPeriodEnd
	s.discountStart = state.DiscountStart
	s.discountEnd = state.DiscountEnd
	s.trialStartAt = state.TrialStartAt
	s.trialEndAt = state.TrialEndAt
	s.updatedAt = time.Now().UTC()
	s.version++

	return nil
}

// ApplyOfferTransition mutates the recorded offer identifier according to a
// resolved transition. Unchanged leaves the field exactly as it is, which the
// persistence layer must translate into omitting the column from the update.
func (s *Subscription) ApplyOfferTransition(t OfferTransition) {
	switch t.Kind {
	case OfferUnchanged:
		return
	case OfferSet:
		offerSID := t.OfferSID
		s.offerSID = &offerSID
	case OfferCleared:
		s.offerSID = nil
	}
	s.updatedAt = time.Now().UTC()
	s.version++
}

// IsBilling reports whether a next payment is owed.
func (s *Subscription) IsBilling() bool {
	return s.status.IsBilling()
}

// Validate performs domain-level validation
func (s *Subscription) Validate() error {
	if s.memberSID == "" {
		return fmt.Errorf("member SID is required")
	}
	if s.providerID == "" {
		return fmt.Errorf("provider subscription ID is required")
	}
	if !vo.ValidStatuses[s.status] {
		return fmt.Errorf("invalid status: %s", s.status)
	}
	if s.discountStart == nil && s.discountEnd != nil {
		return fmt.Errorf("discount end without discount start")
	}
	return nil
}
