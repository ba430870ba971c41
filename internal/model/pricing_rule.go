package model

import (
	"errors"
	"time"
)

// RuleKind classifies a pricing rule.  BASE rules are unconditional
// fallbacks; SEASONAL rules apply by explicit month/day window or by
// season classification; DATE_RANGE and SPECIAL_EVENT rules apply
// strictly by their window.
type RuleKind string

const (
	RuleBase         RuleKind = "BASE"
	RuleSeasonal     RuleKind = "SEASONAL"
	RuleDateRange    RuleKind = "DATE_RANGE"
	RuleSpecialEvent RuleKind = "SPECIAL_EVENT"
)

// Season tags produced by the season classifier and carried by
// windowless SEASONAL rules.
type Season string

const (
	SeasonPeak    Season = "PEAK"
	SeasonHigh    Season = "HIGH"
	SeasonOffPeak Season = "OFF_PEAK"
)

var (
	// ErrIncompleteWindow is returned when only some of the four
	// month/day window fields are populated.
	ErrIncompleteWindow = errors.New("model: pricing rule window requires all of start/end month and day")
	// ErrWindowRequired is returned for DATE_RANGE and SPECIAL_EVENT
	// rules missing their window.
	ErrWindowRequired = errors.New("model: pricing rule kind requires a complete window")
	// ErrWindowForbidden is returned when a BASE rule carries a window.
	ErrWindowForbidden = errors.New("model: BASE pricing rule must not carry a window")
)

// RuleWindow is a recurring month/day applicability window.  Windows may
// wrap across the year boundary (e.g. Dec 20 – Feb 28 for a winter
// season), so Contains compares month/day pairs rather than dates.
type RuleWindow struct {
	StartMonth time.Month `json:"start_month"`
	StartDay   int        `json:"start_day"`
	EndMonth   time.Month `json:"end_month"`
	EndDay     int        `json:"end_day"`
}

// Contains reports whether the given date's month/day falls inside the
// window.  Both endpoints are inclusive.  When the start point is after
// the end point the window wraps across the year boundary.
func (w RuleWindow) Contains(date time.Time) bool {
	md := int(date.Month())*100 + date.Day()
	start := int(w.StartMonth)*100 + w.StartDay
	end := int(w.EndMonth)*100 + w.EndDay
	if start <= end {
		return md >= start && md <= end
	}
	// wrapping window, e.g. Dec 20 – Feb 28
	return md >= start || md <= end
}

// PricingRule defines nightly prices, surcharges, fees and discount
// thresholds for one site.  Rules are read-only to the booking core;
// creation and editing belong to the admin surface.  Rows map to the
// `pricing_rules` table; the weekday multiplier map and window are
// stored as JSON columns.
//
// A zero optional pointer means "not configured": no weekend pricing,
// no window, no discount of that type.
type PricingRule struct {
	ID           uint64   // pricing_rules.id
	SiteID       uint64   // pricing_rules.site_id
	Kind         RuleKind // pricing_rules.kind
	Priority     int      // pricing_rules.priority (higher wins)
	Active       bool     // pricing_rules.is_active
	BasePrice    int64    // pricing_rules.base_price (KRW per night)
	WeekendPrice *int64   // pricing_rules.weekend_price (nullable)

	// WeekdayMultipliers optionally scales the nightly base per weekday.
	// Absent weekdays use a multiplier of 1.
	WeekdayMultipliers map[time.Weekday]float64

	BaseGuests    int   // guests included in the base price
	MaxGuests     int   // hard cap for this rule (0 = defer to site capacity)
	ExtraGuestFee int64 // per extra guest, per night (KRW)

	Window    *RuleWindow // recurring applicability window (nullable)
	SeasonTag Season      // season matched by windowless SEASONAL rules

	LongStayMinNights     int     // minimum nights for the long-stay discount
	LongStayRate          float64 // long-stay discount rate as a fraction (0.10 = 10%)
	ExtendedStayMinNights int     // minimum nights for the extended-stay discount
	ExtendedStayRate      float64 // extended-stay discount rate as a fraction
	EarlyBirdMinDays      int     // minimum lead days for the early-bird discount
	EarlyBirdRate         float64 // early-bird discount rate as a fraction

	CreatedAt time.Time // pricing_rules.created_at
	UpdatedAt time.Time // pricing_rules.updated_at
}

// Validate enforces the window invariants per rule kind: DATE_RANGE and
// SPECIAL_EVENT rules must carry a complete window, SEASONAL rules may
// omit it entirely but never partially, and BASE rules carry none.
// Partial windows are rejected by the repository scan before this point,
// but admin-sourced rules pass through here as well.
func (r *PricingRule) Validate() error {
	switch r.Kind {
	case RuleDateRange, RuleSpecialEvent:
		if r.Window == nil {
			return ErrWindowRequired
		}
	case RuleBase:
		if r.Window != nil {
			return ErrWindowForbidden
		}
	}
	if r.Window != nil {
		w := r.Window
		if w.StartMonth < time.January || w.StartMonth > time.December ||
			w.EndMonth < time.January || w.EndMonth > time.December ||
			w.StartDay < 1 || w.StartDay > 31 || w.EndDay < 1 || w.EndDay > 31 {
			return ErrIncompleteWindow
		}
	}
	return nil
}

// MultiplierFor returns the configured weekday multiplier for d, or 1
// when no multiplier is set.
func (r *PricingRule) MultiplierFor(d time.Weekday) float64 {
	if r.WeekdayMultipliers == nil {
		return 1
	}
	if m, ok := r.WeekdayMultipliers[d]; ok && m > 0 {
		return m
	}
	return 1
}
