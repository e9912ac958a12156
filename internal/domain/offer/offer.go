package offer

import (
	"fmt"
	"time"

	vo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/id"
)

// Offer represents the offer aggregate root. An offer mirrors a billing
// provider coupon (for percent/fixed types) or a trial grant (for
// free_months/trial types) and tracks how often it has been redeemed.
type Offer struct {
	id               uint
	sid              string
	name             string
	code             string
	offerType        vo.OfferType
	amount           int64
	duration         vo.Duration
	durationInMonths int
	redemptionType   vo.RedemptionType
	cadence          vo.Cadence
	currency         string
	couponID         string
	active           bool
	redemptionCount  int
	version          int
	createdAt        time.Time
	updatedAt        time.Time
}

// NewOfferParams carries the inputs for creating an offer.
type NewOfferParams struct {
	Name             string
	Code             string
	Type             vo.OfferType
	Amount           int64
	Duration         vo.Duration
	DurationInMonths int
	RedemptionType   vo.RedemptionType
	Cadence          vo.Cadence
	Currency         string
	CouponID         string
}

// NewOffer creates a new offer aggregate after validating the type, amount
// and duration combination.
func NewOffer(p NewOfferParams) (*Offer, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("offer name is required")
	}
	if err := validateShape(p.Type, p.Amount, p.Duration, p.DurationInMonths, p.Currency); err != nil {
		return nil, err
	}
	if !vo.ValidRedemptionTypes[p.RedemptionType] {
		return nil, fmt.Errorf("invalid redemption type: %s", p.RedemptionType)
	}
	if p.Cadence != "" && !vo.ValidCadences[p.Cadence] {
		return nil, fmt.Errorf("invalid cadence: %s", p.Cadence)
	}

	now := time.Now().UTC()
	return &Offer{
		sid:              id.MustGenerateWithPrefix(id.PrefixOffer, id.DefaultLength),
		name:             p.Name,
		code:             p.Code,
		offerType:        p.Type,
		amount:           p.Amount,
		duration:         p.Duration,
		durationInMonths: p.DurationInMonths,
		redemptionType:   p.RedemptionType,
		cadence:          p.Cadence,
		currency:         p.Currency,
		couponID:         p.CouponID,
		active:           true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

func validateShape(t vo.OfferType, amount int64, d vo.Duration, months int, currency string) error {
	if !vo.ValidOfferTypes[t] {
		return fmt.Errorf("invalid offer type: %s", t)
	}
	switch t {
	case vo.TypePercent:
		if amount < 0 || amount > 100 {
			return fmt.Errorf("percent amount must be between 0 and 100, got %d", amount)
		}
	case vo.TypeFixed:
		if amount <= 0 {
			return fmt.Errorf("fixed amount must be positive, got %d", amount)
		}
		if currency == "" {
			return fmt.Errorf("fixed offers require a currency")
		}
	case vo.TypeFreeMonths, vo.TypeTrial:
		if amount <= 0 {
			return fmt.Errorf("%s amount must be positive, got %d", t, amount)
		}
	}
	if t.IsTrialStyle() {
		// Trial-style offers carry no discount duration semantics.
		return nil
	}
	if !vo.ValidDurations[d] {
		return fmt.Errorf("invalid duration: %s", d)
	}
	if d == vo.DurationRepeating && months <= 0 {
		return fmt.Errorf("repeating offers require duration_in_months > 0")
	}
	return nil
}

// ReconstructParams carries the persisted state for rebuilding an offer.
type ReconstructParams struct {
	ID               uint
	SID              string
	Name             string
	Code             string
	Type             vo.OfferType
	Amount           int64
	Duration         vo.Duration
	DurationInMonths int
	RedemptionType   vo.RedemptionType
	Cadence          vo.Cadence
	Currency         string
	CouponID         string
	Active           bool
	RedemptionCount  int
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ReconstructOffer rebuilds an offer from persistence.
func ReconstructOffer(p ReconstructParams) (*Offer, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("offer ID cannot be zero")
	}
	if p.SID == "" {
		return nil, fmt.Errorf("offer SID is required")
	}
	if !vo.ValidOfferTypes[p.Type] {
		return nil, fmt.Errorf("invalid offer type: %s", p.Type)
	}
	if !vo.ValidRedemptionTypes[p.RedemptionType] {
		return nil, fmt.Errorf("invalid redemption type: %s", p.RedemptionType)
	}

	return &Offer{
		id:               p.ID,
		sid:              p.SID,
		name:             p.Name,
		code:             p.Code,
		offerType:        p.Type,
		amount:           p.Amount,
		duration:         p.Duration,
		durationInMonths: p.DurationInMonths,
		redemptionType:   p.RedemptionType,
		cadence:          p.Cadence,
		currency:         p.Currency,
		couponID:         p.CouponID,
		active:           p.Active,
		redemptionCount:  p.RedemptionCount,
		version:          p.Version,
		createdAt:        p.CreatedAt,
		updatedAt:        p.UpdatedAt,
	}, nil
}

func (o *Offer) ID() uint                         { return o.id }
func (o *Offer) SID() string                      { return o.sid }
func (o *Offer) Name() string                     { return o.name }
func (o *Offer) Code() string                     { return o.code }
func (o *Offer) Type() vo.OfferType               { return o.offerType }
func (o *Offer) Amount() int64                    { return o.amount }
func (o *Offer) Duration() vo.Duration            { return o.duration }
func (o *Offer) DurationInMonths() int            { return o.durationInMonths }
func (o *Offer) RedemptionType() vo.RedemptionType { return o.redemptionType }
func (o *Offer) Cadence() vo.Cadence              { return o.cadence }
func (o *Offer) Currency() string                 { return o.currency }
func (o *Offer) CouponID() string                 { return o.couponID }
func (o *Offer) Active() bool                     { return o.active }
func (o *Offer) RedemptionCount() int             { return o.redemptionCount }
func (o *Offer) Version() int                     { return o.version }
func (o *Offer) CreatedAt() time.Time             { return o.createdAt }
func (o *Offer) UpdatedAt() time.Time             { return o.updatedAt }

// IsTrialStyle reports whether the offer is realized as a provider trial.
func (o *Offer) IsTrialStyle() bool {
	return o.offerType.IsTrialStyle()
}

// SetID sets the offer ID (only for persistence layer use)
func (o *Offer) SetID(newID uint) error {
	if o.id != 0 {
		return fmt.Errorf("offer ID is already set")
	}
	if newID == 0 {
		return fmt.Errorf("offer ID cannot be zero")
	}
	o.id = newID
	return nil
}

// RecordRedemption increments the redemption counter.
func (o *Offer) RecordRedemption() {
	o.redemptionCount++
	o.updatedAt = time.Now().UTC()
	o.version++
}

// Archive deactivates the offer so it can no longer be applied.
func (o *Offer) Archive() {
	if !o.active {
		return
	}
	o.active = false
	o.updatedAt = time.Now().UTC()
	o.version++
}
