package pricing

import (
	"errors"
	"math"
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// ErrInvalidStay is returned when the stay contains no nights, i.e.
// check-out is not strictly after check-in.
var ErrInvalidStay = errors.New("pricing: stay must contain at least one night")

// Midnight truncates t to a UTC calendar date.  All pricing arithmetic
// works on dates, never on clock times.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of nights between two dates using half-open
// interval semantics.
func Nights(checkIn, checkOut time.Time) int {
	return int(Midnight(checkOut).Sub(Midnight(checkIn)).Hours() / 24)
}

// isWeekendNight reports whether a night starting on d attracts weekend
// pricing.  Friday and Saturday nights do; a Sunday night does not.
func isWeekendNight(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// roundHalfUp rounds to the nearest whole KRW, halves away from zero on
// the positive side (0.5 -> 1).
func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}

// Breakdown walks the stay night-by-night, resolving the applicable
// rule for each date and accumulating base price and weekend surcharge.
// The rule resolved for the first night becomes the representative rule
// and alone supplies the guest-fee parameters: when guests exceed its
// base guest count the extra-guest fee is
// (guests − baseGuests) × extraGuestNightlyFee × nights, computed once.
//
// The weekend surcharge records only the delta between the (multiplied)
// weekend price and the (multiplied) base price, so BasePrice always
// reflects the plain nightly rate summed over all nights.
//
// Discounts are not applied here; see Quote.
func (e *Engine) Breakdown(rules []model.PricingRule, checkIn, checkOut time.Time, guests int) (model.PriceBreakdown, error) {
	checkIn = Midnight(checkIn)
	checkOut = Midnight(checkOut)
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return model.PriceBreakdown{}, ErrInvalidStay
	}

	var bd model.PriceBreakdown
	bd.Nights = nights

	var representative *model.PricingRule
	for d := checkIn; d.Before(checkOut); d = d.AddDate(0, 0, 1) {
		rule, err := e.Resolve(rules, d)
		if err != nil {
			if errors.Is(err, ErrNoActiveRules) {
				return model.PriceBreakdown{}, &NoApplicablePricingError{Date: d}
			}
			return model.PriceBreakdown{}, err
		}
		mult := rule.MultiplierFor(d.Weekday())
		nightBase := roundHalfUp(float64(rule.BasePrice) * mult)
		bd.BasePrice += nightBase
		if isWeekendNight(d) && rule.WeekendPrice != nil {
			weekend := roundHalfUp(float64(*rule.WeekendPrice) * mult)
			bd.WeekendSurcharge += weekend - nightBase
		}
		if representative == nil {
			representative = rule
		}
	}

	bd.RuleID = representative.ID
	if representative.BaseGuests > 0 && guests > representative.BaseGuests {
		bd.ExtraGuestFee = int64(guests-representative.BaseGuests) * representative.ExtraGuestFee * int64(nights)
	}
	bd.TotalAmount = bd.Subtotal()
	return bd, nil
}

// Quote produces the complete breakdown for a stay: nightly pass,
// extra-guest fee, then stacked discounts evaluated against the
// representative rule.  now supplies "today" for the early-bird lead
// time.  The returned breakdown always satisfies model.Verify.
func (e *Engine) Quote(rules []model.PricingRule, checkIn, checkOut time.Time, guests int, now time.Time) (model.PriceBreakdown, error) {
	bd, err := e.Breakdown(rules, checkIn, checkOut, guests)
	if err != nil {
		return model.PriceBreakdown{}, err
	}
	rep := findRule(rules, bd.RuleID)
	leadDays := Nights(now, checkIn)
	bd.Discounts = EvaluateDiscounts(bd.Subtotal(), bd.Nights, leadDays, rep)
	bd.TotalAmount = totalAfterDiscounts(bd.Subtotal(), bd.Discounts)
	return bd, nil
}

func findRule(rules []model.PricingRule, id uint64) *model.PricingRule {
	for i := range rules {
		if rules[i].ID == id {
			return &rules[i]
		}
	}
	return nil
}
