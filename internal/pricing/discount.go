package pricing

import (
	"github.com/gocamp/campsite-reservation/internal/model"
)

// EvaluateDiscounts computes the discount line items for a stay.  The
// stay-length discounts are tiered, not stacked: the extended-stay rate
// replaces the long-stay rate when both thresholds are met.  The
// early-bird discount is independent and stacks on top of either.
//
// Each triggered discount contributes a separate line item whose amount
// is −round(subtotal × rate) in whole KRW.  rule may be nil (no
// representative rule parameters), in which case no discounts apply.
func EvaluateDiscounts(subtotal int64, nights, leadDays int, rule *model.PricingRule) []model.DiscountLine {
	if rule == nil || subtotal <= 0 {
		return nil
	}
	var lines []model.DiscountLine
	switch {
	case rule.ExtendedStayMinNights > 0 && rule.ExtendedStayRate > 0 && nights >= rule.ExtendedStayMinNights:
		lines = append(lines, discountLine(model.DiscountExtendedStay, rule.ExtendedStayRate, subtotal))
	case rule.LongStayMinNights > 0 && rule.LongStayRate > 0 && nights >= rule.LongStayMinNights:
		lines = append(lines, discountLine(model.DiscountLongStay, rule.LongStayRate, subtotal))
	}
	if rule.EarlyBirdMinDays > 0 && rule.EarlyBirdRate > 0 && leadDays >= rule.EarlyBirdMinDays {
		lines = append(lines, discountLine(model.DiscountEarlyBird, rule.EarlyBirdRate, subtotal))
	}
	return lines
}

func discountLine(t model.DiscountType, rate float64, subtotal int64) model.DiscountLine {
	return model.DiscountLine{
		Type:   t,
		Rate:   rate,
		Amount: -roundHalfUp(float64(subtotal) * rate),
	}
}

// totalAfterDiscounts applies the discount amounts to the subtotal,
// clamping at zero: a pathological rule configuration producing more
// than 100% discount must never yield a negative charge.
func totalAfterDiscounts(subtotal int64, lines []model.DiscountLine) int64 {
	total := subtotal
	for _, l := range lines {
		total += l.Amount
	}
	if total < 0 {
		total = 0
	}
	return total
}
