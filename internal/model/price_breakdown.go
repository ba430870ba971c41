package model

import "fmt"

// DiscountType labels a discount line item in a price breakdown.
type DiscountType string

const (
	DiscountLongStay     DiscountType = "LONG_STAY"
	DiscountExtendedStay DiscountType = "EXTENDED_STAY"
	DiscountEarlyBird    DiscountType = "EARLY_BIRD"
)

// DiscountLine is one applied discount.  Amount is always negative or
// zero; Rate is the fraction that produced it.
type DiscountLine struct {
	Type   DiscountType `json:"type"`
	Rate   float64      `json:"rate"`
	Amount int64        `json:"amount"`
}

// PriceBreakdown is the itemized record of how a stay's total was
// derived.  It is serialized to JSON and stored immutably alongside the
// reservation at creation time, so disputes can be settled against the
// rules that were in force then, not the rules of today.
//
// Invariant: TotalAmount == BasePrice + WeekendSurcharge + ExtraGuestFee
// + sum of discount amounts, and TotalAmount >= 0.
type PriceBreakdown struct {
	RuleID           uint64         `json:"rule_id"` // representative rule (first night)
	Nights           int            `json:"nights"`
	BasePrice        int64          `json:"base_price"`
	WeekendSurcharge int64          `json:"weekend_surcharge"`
	ExtraGuestFee    int64          `json:"extra_guest_fee"`
	Discounts        []DiscountLine `json:"discounts,omitempty"`
	TotalAmount      int64          `json:"total_amount"`
}

// Subtotal is the pre-discount amount.
func (b *PriceBreakdown) Subtotal() int64 {
	return b.BasePrice + b.WeekendSurcharge + b.ExtraGuestFee
}

// Verify checks the breakdown's arithmetic invariant.  Stored snapshots
// must always reproduce their total exactly.
func (b *PriceBreakdown) Verify() error {
	sum := b.Subtotal()
	for _, d := range b.Discounts {
		if d.Amount > 0 {
			return fmt.Errorf("model: discount %s has positive amount %d", d.Type, d.Amount)
		}
		sum += d.Amount
	}
	if sum < 0 {
		sum = 0
	}
	if sum != b.TotalAmount {
		return fmt.Errorf("model: breakdown total %d does not reproduce components sum %d", b.TotalAmount, sum)
	}
	if b.TotalAmount < 0 {
		return fmt.Errorf("model: breakdown total %d is negative", b.TotalAmount)
	}
	return nil
}
