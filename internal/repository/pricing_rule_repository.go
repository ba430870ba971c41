package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// PricingRuleRepo provides read access to pricing rules.  Rule creation
// and editing belong to the admin surface; the booking core only lists
// the active rules of a site, already ordered for resolution.
type PricingRuleRepo struct {
	db *sql.DB
}

// NewPricingRuleRepo returns a new PricingRuleRepo bound to the given
// database.
func NewPricingRuleRepo(db *sql.DB) *PricingRuleRepo { return &PricingRuleRepo{db: db} }

// weekdayNames maps the JSON keys of the weekday_multipliers column to
// time.Weekday values.
var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

// ListActiveForSite returns all active rules of a site ordered by
// priority descending; rules of equal priority keep insertion order
// (id ascending), which makes resolution deterministic.  The ordering
// is part of the resolver's contract and must not change.
//
// Rules with a partially populated window are a data defect and abort
// the listing: either all four of start/end month/day are set or none.
func (r *PricingRuleRepo) ListActiveForSite(ctx context.Context, siteID uint64) ([]model.PricingRule, error) {
	const q = `SELECT id, site_id, kind, priority, base_price, weekend_price,
                      weekday_multipliers, base_guests, max_guests, extra_guest_fee,
                      window_start_month, window_start_day, window_end_month, window_end_day,
                      season_tag,
                      long_stay_min_nights, long_stay_rate,
                      extended_stay_min_nights, extended_stay_rate,
                      early_bird_min_days, early_bird_rate,
                      created_at, updated_at
               FROM pricing_rules
               WHERE site_id = ? AND is_active = 1
               ORDER BY priority DESC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, siteID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.PricingRule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func scanRule(rows *sql.Rows) (*model.PricingRule, error) {
	var (
		rule         model.PricingRule
		weekendPrice sql.NullInt64
		multipliers  sql.NullString
		startMonth   sql.NullInt64
		startDay     sql.NullInt64
		endMonth     sql.NullInt64
		endDay       sql.NullInt64
		seasonTag    sql.NullString
	)
	rule.Active = true
	if err := rows.Scan(
		&rule.ID, &rule.SiteID, &rule.Kind, &rule.Priority, &rule.BasePrice, &weekendPrice,
		&multipliers, &rule.BaseGuests, &rule.MaxGuests, &rule.ExtraGuestFee,
		&startMonth, &startDay, &endMonth, &endDay,
		&seasonTag,
		&rule.LongStayMinNights, &rule.LongStayRate,
		&rule.ExtendedStayMinNights, &rule.ExtendedStayRate,
		&rule.EarlyBirdMinDays, &rule.EarlyBirdRate,
		&rule.CreatedAt, &rule.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if weekendPrice.Valid {
		wp := weekendPrice.Int64
		rule.WeekendPrice = &wp
	}
	if seasonTag.Valid {
		rule.SeasonTag = model.Season(seasonTag.String)
	}
	if multipliers.Valid && multipliers.String != "" {
		parsed, err := parseMultipliers(multipliers.String)
		if err != nil {
			return nil, fmt.Errorf("rule %d: %w", rule.ID, err)
		}
		rule.WeekdayMultipliers = parsed
	}

	set := 0
	for _, v := range []sql.NullInt64{startMonth, startDay, endMonth, endDay} {
		if v.Valid {
			set++
		}
	}
	switch set {
	case 0:
		// no window
	case 4:
		rule.Window = &model.RuleWindow{
			StartMonth: time.Month(startMonth.Int64),
			StartDay:   int(startDay.Int64),
			EndMonth:   time.Month(endMonth.Int64),
			EndDay:     int(endDay.Int64),
		}
	default:
		return nil, fmt.Errorf("rule %d: %w", rule.ID, model.ErrIncompleteWindow)
	}
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	return &rule, nil
}

// parseMultipliers decodes the weekday_multipliers JSON column, e.g.
// {"fri": 1.2, "sat": 1.5}.  Unknown keys are rejected so typos in
// admin data fail loudly instead of silently pricing at 1x.
func parseMultipliers(raw string) (map[time.Weekday]float64, error) {
	var byName map[string]float64
	if err := json.Unmarshal([]byte(raw), &byName); err != nil {
		return nil, fmt.Errorf("invalid weekday_multipliers: %w", err)
	}
	out := make(map[time.Weekday]float64, len(byName))
	for name, mult := range byName {
		wd, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("invalid weekday_multipliers key %q", name)
		}
		out[wd] = mult
	}
	return out, nil
}
