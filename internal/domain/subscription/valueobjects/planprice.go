package valueobjects

import "fmt"

// PlanInterval is the billing interval of a plan price.
type PlanInterval string

const (
	IntervalMonth PlanInterval = "month"
	IntervalYear  PlanInterval = "year"
	IntervalWeek  PlanInterval = "week"
	IntervalDay   PlanInterval = "day"
)

var ValidIntervals = map[PlanInterval]bool{
	IntervalMonth: true,
	IntervalYear:  true,
	IntervalWeek:  true,
	IntervalDay:   true,
}

// PlanPrice is an immutable snapshot of the price a subscription was linked
// at. Amount is in the currency's minor units.
type PlanPrice struct {
	amount   int64
	interval PlanInterval
	currency string
	nickname string
}

func NewPlanPrice(amount int64, interval PlanInterval, currency, nickname string) (PlanPrice, error) {
	if amount < 0 {
		return PlanPrice{}, fmt.Errorf("plan amount cannot be negative")
	}
	if !ValidIntervals[interval] {
		return PlanPrice{}, fmt.Errorf("invalid plan interval: %s", interval)
	}
	if currency == "" {
		return PlanPrice{}, fmt.Errorf("plan currency is required")
	}
	return PlanPrice{
		amount:   amount,
		interval: interval,
		currency: currency,
		nickname: nickname,
	}, nil
}

func (p PlanPrice) Amount() int64          { return p.amount }
func (p PlanPrice) Interval() PlanInterval { return p.interval }
func (p PlanPrice) Currency() string       { return p.currency }
func (p PlanPrice) Nickname() string       { return p.nickname }

func (p PlanPrice) Equals(other PlanPrice) bool {
	return p.amount == other.amount &&
		p.interval == other.interval &&
		p.currency == other.currency
}

func (p PlanPrice) String() string {
	return fmt.Sprintf("%d %s / %s", p.amount, p.currency, p.interval)
}
