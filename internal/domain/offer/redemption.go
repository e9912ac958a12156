package offer

import (
	"fmt"
	"time"

	"github.com/tigefa4u/Ghost-sub000/internal/shared/id"
)

// Redemption is the persisted audit record of an offer attaching to a
// subscription. The timestamp mirrors the emitted OfferRedeemedEvent.
type Redemption struct {
	id              uint
	sid             string
	offerSID        string
	memberSID       string
	subscriptionSID string
	redeemedAt      time.Time
	createdAt       time.Time
}

func NewRedemption(offerSID, memberSID, subscriptionSID string, redeemedAt time.Time) (*Redemption, error) {
	if offerSID == "" {
		return nil, fmt.Errorf("offer SID is required")
	}
	if subscriptionSID == "" {
		return nil, fmt.Errorf("subscription SID is required")
	}
	return &Redemption{
		sid:             id.MustGenerateWithPrefix(id.PrefixRedemption, id.DefaultLength),
		offerSID:        offerSID,
		memberSID:       memberSID,
		subscriptionSID: subscriptionSID,
		redeemedAt:      redeemedAt.UTC(),
		createdAt:       time.Now().UTC(),
	}, nil
}

// ReconstructRedemption rebuilds a redemption from persistence.
func ReconstructRedemption(dbID uint, sid, offerSID, memberSID, subscriptionSID string, redeemedAt, createdAt time.Time) (*Redemption, error) {
	if dbID == 0 {
		return nil, fmt.Errorf("redemption ID cannot be zero")
	}
	return &Redemption{
		id:              dbID,
		sid:             sid,
		offerSID:        offerSID,
		memberSID:       memberSID,
		subscriptionSID: subscriptionSID,
		redeemedAt:      redeemedAt,
		createdAt:       createdAt,
	}, nil
}

func (r *Redemption) ID() uint                { return r.id }
func (r *Redemption) SID() string             { return r.sid }
func (r *Redemption) OfferSID() string        { return r.offerSID }
func (r *Redemption) MemberSID() string       { return r.memberSID }
func (r *Redemption) SubscriptionSID() string { return r.subscriptionSID }
func (r *Redemption) RedeemedAt() time.Time   { return r.redeemedAt }
func (r *Redemption) CreatedAt() time.Time    { return r.createdAt }

// SetID sets the redemption ID (only for persistence layer use)
func (r *Redemption) SetID(newID uint) error {
	if r.id != 0 {
		return fmt.Errorf("redemption ID is already set")
	}
	if newID == 0 {
		return fmt.Errorf("redemption ID cannot be zero")
	}
	r.id = newID
	return nil
}
