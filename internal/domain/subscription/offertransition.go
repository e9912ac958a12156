package subscription

import "time"

// OfferTransitionKind is the tagged outcome of resolving which offer a
// subscription record should carry after a sync.
type OfferTransitionKind int

const (
	// OfferUnchanged keeps the stored offer untouched; the persistence layer
	// must omit the column from the update entirely.
	OfferUnchanged OfferTransitionKind = iota
	// OfferSet records a specific offer identifier.
	OfferSet
	// OfferCleared explicitly nulls the stored offer identifier.
	OfferCleared
)

func (k OfferTransitionKind) String() string {
	switch k {
	case OfferUnchanged:
		return "unchanged"
	case OfferSet:
		return "set"
	case OfferCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// RedemptionIntent asks the caller to emit an offer-redemption event.
type RedemptionIntent struct {
	OfferSID  string
	Timestamp time.Time
}

// OfferTransition is the resolved outcome. OfferSID is meaningful only when
// Kind is OfferSet. Redemption is nil when no event should fire.
type OfferTransition struct {
	Kind       OfferTransitionKind
	OfferSID   string
	Redemption *RedemptionIntent
}

// OfferTransitionInput gathers everything the decision procedure needs.
// All values are data; the resolver performs no lookups.
type OfferTransitionInput struct {
	// IsNewRecord is true when no stored subscription record exists yet.
	IsNewRecord bool
	// ExistingOfferSID is the offer recorded on the stored subscription,
	// nil when none (or when IsNewRecord).
	ExistingOfferSID *string
	// ExistingTrialEndAt is the trial end recorded on the stored record.
	ExistingTrialEndAt *time.Time
	// CouponOfferSID is the offer derived from the incoming payload's
	// coupon data, nil when the payload carries no discount.
	CouponOfferSID *string
	// ExplicitOfferSID is non-nil only when the caller knows exactly which
	// offer was redeemed (checkout completion, retention attach).
	ExplicitOfferSID *string
	// DiscountStart is the incoming coupon window's start, used as the
	// redemption event timestamp when available.
	DiscountStart *time.Time
	// RecordCreatedAt is the stored record's creation time, the fallback
	// event timestamp when no discount window exists (trial-style offers).
	RecordCreatedAt time.Time
	// Now anchors trial liveness checks.
	Now time.Time
}

// ResolveOfferTransition decides what the subscription's recorded offer
// should become after a sync, and whether a redemption event fires.
//
// The procedure applies the first matching rule:
//
//   - New records take the explicit offer, else the coupon-derived offer,
//     else nothing; any non-nil result is a redemption.
//   - On existing records an explicit offer that differs from the stored one
//     wins outright (free member upgrading to paid after the webhook landed,
//     or a retention offer attached from the admin).
//   - Otherwise coupon data from the payload wins, even over an active trial:
//     a fresh provider discount always takes priority over a preserved
//     trial-style offer.
//   - Without coupon data, an active trial means the stored offer is
//     preserved untouched. Trial-style offers have no provider discount to
//     re-derive from, so an absent coupon must not read as "offer removed".
//   - Failing all of that the stored offer is explicitly cleared.
//
// A redemption fires only when the resolved offer differs from the stored
// one, which makes reapplying the same payload a no-op: same transition, no
// second event.
func ResolveOfferTransition(in OfferTransitionInput) OfferTransition {
	if in.IsNewRecord {
		chosen := coalesce(in.ExplicitOfferSID, in.CouponOfferSID)
		if chosen == nil {
			return OfferTransition{Kind: OfferCleared}
		}
		return OfferTransition{
			Kind:       OfferSet,
			OfferSID:   *chosen,
			Redemption: &RedemptionIntent{OfferSID: *chosen, Timestamp: in.eventTimestamp()},
		}
	}

	if in.ExplicitOfferSID != nil && !equalPtr(in.ExplicitOfferSID, in.ExistingOfferSID) {
		return OfferTransition{
			Kind:       OfferSet,
			OfferSID:   *in.ExplicitOfferSID,
			Redemption: &RedemptionIntent{OfferSID: *in.ExplicitOfferSID, Timestamp: in.eventTimestamp()},
		}
	}

	if in.CouponOfferSID != nil {
		t := OfferTransition{Kind: OfferSet, OfferSID: *in.CouponOfferSID}
		if !equalPtr(in.CouponOfferSID, in.ExistingOfferSID) {
			t.Redemption = &RedemptionIntent{OfferSID: *in.CouponOfferSID, Timestamp: in.eventTimestamp()}
		}
		return t
	}

	if in.ExistingTrialEndAt != nil && in.ExistingTrialEndAt.After(in.Now) {
		return OfferTransition{Kind: OfferUnchanged}
	}

	return OfferTransition{Kind: OfferCleared}
}

// eventTimestamp prefers the coupon's start over the record's creation time.
func (in OfferTransitionInput) eventTimestamp() time.Time {
	if in.DiscountStart != nil {
		return *in.DiscountStart
	}
	return in.RecordCreatedAt
}

func coalesce(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func equalPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
