package subscription

import (
	"time"

	"github.com/tigefa4u/Ghost-sub000/internal/domain/offer"
	offervo "github.com/tigefa4u/Ghost-sub000/internal/domain/offer/valueobjects"
	"github.com/tigefa4u/Ghost-sub000/internal/shared/biztime"
)

// DiscountWindow is the time span during which a price reduction applies.
// A nil End means the discount never expires. A nil *DiscountWindow means no
// discount applies at all, which is distinct from an open-ended one.
type DiscountWindow struct {
	Start *time.Time
	End   *time.Time
}

// ResolveDiscountWindow computes the window during which sub's price
// reduction applies. off may be nil to request provider-only resolution.
//
// Resolution order, first match wins:
//
//  1. A provider-reported discount is returned verbatim, even when its end is
//     already in the past. Liveness is the caller's concern; the resolver
//     reports the raw window truthfully. Provider truth always beats any
//     legacy reconstruction.
//  2. Trial-style offers (free_months, trial) carry no provider discount
//     object, so their window comes from the trial fields. No trial end means
//     no window.
//  3. Without provider data, the window is reconstructed from the offer's
//     duration, anchored at the subscription start date. This backport exists
//     for subscriptions created before window tracking; a once-duration
//     discount cannot be reconstructed after the fact and resolves to nil.
//
// Pure function: no I/O, no clock reads, never errors. Unrecognized durations
// degrade to nil.
func ResolveDiscountWindow(sub *Subscription, off *offer.Offer, now time.Time) *DiscountWindow {
	if sub == nil {
		return nil
	}

	if sub.DiscountStart() != nil {
		return &DiscountWindow{
			Start: sub.DiscountStart(),
			End:   sub.DiscountEnd(),
		}
	}

	if off == nil {
		return nil
	}

	if off.IsTrialStyle() {
		if sub.TrialEndAt() == nil {
			return nil
		}
		return &DiscountWindow{
			Start: sub.TrialStartAt(),
			End:   sub.TrialEndAt(),
		}
	}

	return legacyWindow(sub, off, now)
}

// legacyWindow reconstructs a window for subscriptions that predate the
// provider discount fields.
func legacyWindow(sub *Subscription, off *offer.Offer, now time.Time) *DiscountWindow {
	start := sub.StartDate()

	switch off.Duration() {
	case offervo.DurationForever:
		return &DiscountWindow{Start: &start}
	case offervo.DurationRepeating:
		months := off.DurationInMonths()
		if months <= 0 {
			return nil
		}
		end := biztime.AddCalendarMonths(start, months)
		if !now.Before(end) {
			return nil
		}
		return &DiscountWindow{Start: &start, End: &end}
	default:
		// once, unknown: nothing to reconstruct.
		return nil
	}
}
