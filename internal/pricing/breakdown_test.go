package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// 2026-09-04 is a Friday; 2026-07-06 and 2026-10-05 are Mondays.

func weekendRule(id uint64, base, weekend int64) model.PricingRule {
	r := baseRule(id, base)
	r.WeekendPrice = &weekend
	return r
}

func TestNights(t *testing.T) {
	assert.Equal(t, 2, Nights(date(2026, time.September, 4), date(2026, time.September, 6)))
	assert.Equal(t, 0, Nights(date(2026, time.September, 4), date(2026, time.September, 4)))
	// clock times on the inputs are ignored
	in := time.Date(2026, time.September, 4, 23, 50, 0, 0, time.UTC)
	out := time.Date(2026, time.September, 6, 0, 10, 0, 0, time.UTC)
	assert.Equal(t, 2, Nights(in, out))
}

func TestBreakdownWeekendSurcharge(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{weekendRule(1, 50000, 70000)}

	// Friday and Saturday nights, checkout Sunday morning.
	bd, err := e.Breakdown(rules, date(2026, time.September, 4), date(2026, time.September, 6), 2)
	require.NoError(t, err)

	assert.Equal(t, 2, bd.Nights)
	assert.Equal(t, int64(100000), bd.BasePrice)
	assert.Equal(t, int64(40000), bd.WeekendSurcharge)
	assert.Equal(t, int64(0), bd.ExtraGuestFee)
	assert.Equal(t, int64(140000), bd.TotalAmount)
	assert.Equal(t, uint64(1), bd.RuleID)
	require.NoError(t, bd.Verify())
}

func TestBreakdownSundayNightIsNotWeekend(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{weekendRule(1, 50000, 70000)}

	bd, err := e.Breakdown(rules, date(2026, time.September, 6), date(2026, time.September, 7), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), bd.BasePrice)
	assert.Equal(t, int64(0), bd.WeekendSurcharge)
}

func TestBreakdownNoWeekendPriceConfigured(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{baseRule(1, 50000)}

	bd, err := e.Breakdown(rules, date(2026, time.September, 4), date(2026, time.September, 6), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(100000), bd.BasePrice)
	assert.Equal(t, int64(0), bd.WeekendSurcharge)
}

func TestBreakdownExtraGuestFee(t *testing.T) {
	e := NewEngine(nil)
	r := weekendRule(1, 50000, 70000)
	r.BaseGuests = 2
	r.ExtraGuestFee = 10000
	rules := []model.PricingRule{r}

	bd, err := e.Breakdown(rules, date(2026, time.September, 4), date(2026, time.September, 6), 4)
	require.NoError(t, err)

	// (4 - 2) guests x 10000 x 2 nights
	assert.Equal(t, int64(40000), bd.ExtraGuestFee)
	assert.Equal(t, int64(180000), bd.TotalAmount)
	require.NoError(t, bd.Verify())
}

func TestBreakdownGuestsWithinBaseCount(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 50000)
	r.BaseGuests = 4
	r.ExtraGuestFee = 10000
	rules := []model.PricingRule{r}

	bd, err := e.Breakdown(rules, date(2026, time.October, 5), date(2026, time.October, 7), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), bd.ExtraGuestFee)
}

func TestBreakdownWeekdayMultiplier(t *testing.T) {
	e := NewEngine(nil)
	r := weekendRule(1, 50000, 70000)
	r.WeekdayMultipliers = map[time.Weekday]float64{time.Friday: 1.2}
	rules := []model.PricingRule{r}

	// One Friday night: base 50000x1.2 = 60000, weekend 70000x1.2 = 84000.
	bd, err := e.Breakdown(rules, date(2026, time.September, 4), date(2026, time.September, 5), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(60000), bd.BasePrice)
	assert.Equal(t, int64(24000), bd.WeekendSurcharge)
	assert.Equal(t, int64(84000), bd.TotalAmount)
}

func TestBreakdownRoundsHalfUp(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 33333)
	r.WeekdayMultipliers = map[time.Weekday]float64{time.Monday: 1.5}
	rules := []model.PricingRule{r}

	// 33333 x 1.5 = 49999.5 -> 50000
	bd, err := e.Breakdown(rules, date(2026, time.October, 5), date(2026, time.October, 6), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), bd.BasePrice)
}

func TestBreakdownRepresentativeRuleIsFirstNight(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{
		julyRule(2, model.RuleSeasonal, 10, 80000),
		baseRule(1, 50000),
	}

	// Stay straddles the window end: Jul 30 and Jul 31 price at 80000,
	// Aug 1 at 50000.  The first night's rule is the representative.
	bd, err := e.Breakdown(rules, date(2026, time.July, 30), date(2026, time.August, 2), 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), bd.RuleID)
	assert.Equal(t, int64(210000), bd.BasePrice)
}

func TestBreakdownInvalidStay(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{baseRule(1, 50000)}

	_, err := e.Breakdown(rules, date(2026, time.September, 6), date(2026, time.September, 6), 2)
	require.ErrorIs(t, err, ErrInvalidStay)

	_, err = e.Breakdown(rules, date(2026, time.September, 6), date(2026, time.September, 4), 2)
	require.ErrorIs(t, err, ErrInvalidStay)
}

func TestBreakdownNoRulesAborts(t *testing.T) {
	e := NewEngine(nil)

	_, err := e.Breakdown(nil, date(2026, time.September, 4), date(2026, time.September, 6), 2)
	var noRule *NoApplicablePricingError
	require.ErrorAs(t, err, &noRule)
	assert.Equal(t, date(2026, time.September, 4), noRule.Date)
}

func TestQuoteSeasonalLongStay(t *testing.T) {
	e := NewEngine(nil)
	seasonal := julyRule(2, model.RuleSeasonal, 10, 80000)
	seasonal.LongStayMinNights = 3
	seasonal.LongStayRate = 0.10
	rules := []model.PricingRule{seasonal, baseRule(1, 50000)}

	// Three weeknights in July: subtotal 240000, 10% long-stay off.
	bd, err := e.Quote(rules, date(2026, time.July, 6), date(2026, time.July, 9), 2, date(2026, time.June, 1))
	require.NoError(t, err)

	assert.Equal(t, int64(240000), bd.Subtotal())
	require.Len(t, bd.Discounts, 1)
	assert.Equal(t, model.DiscountLongStay, bd.Discounts[0].Type)
	assert.Equal(t, int64(-24000), bd.Discounts[0].Amount)
	assert.Equal(t, int64(216000), bd.TotalAmount)
	require.NoError(t, bd.Verify())
}

func TestQuoteEarlyBirdStacksOnLongStay(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 50000)
	r.LongStayMinNights = 3
	r.LongStayRate = 0.10
	r.EarlyBirdMinDays = 30
	r.EarlyBirdRate = 0.05
	rules := []model.PricingRule{r}

	// Booked 35 days ahead: both discounts apply against the 150000
	// subtotal independently.
	bd, err := e.Quote(rules, date(2026, time.October, 5), date(2026, time.October, 8), 2, date(2026, time.August, 31))
	require.NoError(t, err)

	require.Len(t, bd.Discounts, 2)
	assert.Equal(t, model.DiscountLongStay, bd.Discounts[0].Type)
	assert.Equal(t, int64(-15000), bd.Discounts[0].Amount)
	assert.Equal(t, model.DiscountEarlyBird, bd.Discounts[1].Type)
	assert.Equal(t, int64(-7500), bd.Discounts[1].Amount)
	assert.Equal(t, int64(127500), bd.TotalAmount)
	require.NoError(t, bd.Verify())
}

func TestQuoteEarlyBirdNeedsLeadTime(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 50000)
	r.EarlyBirdMinDays = 30
	r.EarlyBirdRate = 0.05
	rules := []model.PricingRule{r}

	bd, err := e.Quote(rules, date(2026, time.October, 5), date(2026, time.October, 8), 2, date(2026, time.October, 1))
	require.NoError(t, err)
	assert.Empty(t, bd.Discounts)
	assert.Equal(t, int64(150000), bd.TotalAmount)
}

func TestQuoteExtendedStayReplacesLongStay(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 50000)
	r.LongStayMinNights = 3
	r.LongStayRate = 0.10
	r.ExtendedStayMinNights = 7
	r.ExtendedStayRate = 0.15
	rules := []model.PricingRule{r}

	bd, err := e.Quote(rules, date(2026, time.October, 5), date(2026, time.October, 12), 2, date(2026, time.October, 1))
	require.NoError(t, err)

	require.Len(t, bd.Discounts, 1, "stay-length discounts are tiered, not stacked")
	assert.Equal(t, model.DiscountExtendedStay, bd.Discounts[0].Type)
	require.NoError(t, bd.Verify())
}

func TestQuoteTotalClampsAtZero(t *testing.T) {
	e := NewEngine(nil)
	r := baseRule(1, 50000)
	r.ExtendedStayMinNights = 2
	r.ExtendedStayRate = 0.90
	r.EarlyBirdMinDays = 1
	r.EarlyBirdRate = 0.50
	rules := []model.PricingRule{r}

	bd, err := e.Quote(rules, date(2026, time.October, 5), date(2026, time.October, 7), 2, date(2026, time.September, 1))
	require.NoError(t, err)
	assert.Equal(t, int64(0), bd.TotalAmount)
	require.NoError(t, bd.Verify())
}

func TestQuoteIsDeterministic(t *testing.T) {
	e := NewEngine(nil)
	seasonal := julyRule(2, model.RuleSeasonal, 10, 80000)
	seasonal.LongStayMinNights = 3
	seasonal.LongStayRate = 0.10
	rules := []model.PricingRule{seasonal, weekendRule(1, 50000, 70000)}

	first, err := e.Quote(rules, date(2026, time.July, 3), date(2026, time.July, 8), 3, date(2026, time.June, 1))
	require.NoError(t, err)
	second, err := e.Quote(rules, date(2026, time.July, 3), date(2026, time.July, 8), 3, date(2026, time.June, 1))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
