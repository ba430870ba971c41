package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(m time.Month, day int) time.Time {
	return time.Date(2026, m, day, 0, 0, 0, 0, time.UTC)
}

func TestRuleWindowContains(t *testing.T) {
	summer := RuleWindow{StartMonth: time.July, StartDay: 1, EndMonth: time.August, EndDay: 31}
	assert.True(t, summer.Contains(d(time.July, 1)), "start endpoint is inclusive")
	assert.True(t, summer.Contains(d(time.August, 31)), "end endpoint is inclusive")
	assert.True(t, summer.Contains(d(time.July, 20)))
	assert.False(t, summer.Contains(d(time.June, 30)))
	assert.False(t, summer.Contains(d(time.September, 1)))
}

func TestRuleWindowWrapsYearBoundary(t *testing.T) {
	winter := RuleWindow{StartMonth: time.December, StartDay: 20, EndMonth: time.February, EndDay: 28}
	assert.True(t, winter.Contains(d(time.December, 20)))
	assert.True(t, winter.Contains(d(time.January, 15)))
	assert.True(t, winter.Contains(d(time.February, 28)))
	assert.False(t, winter.Contains(d(time.March, 1)))
	assert.False(t, winter.Contains(d(time.December, 19)))
}

func TestPricingRuleValidate(t *testing.T) {
	win := &RuleWindow{StartMonth: time.July, StartDay: 1, EndMonth: time.July, EndDay: 31}

	r := PricingRule{Kind: RuleDateRange}
	require.ErrorIs(t, r.Validate(), ErrWindowRequired)

	r = PricingRule{Kind: RuleSpecialEvent}
	require.ErrorIs(t, r.Validate(), ErrWindowRequired)

	r = PricingRule{Kind: RuleBase, Window: win}
	require.ErrorIs(t, r.Validate(), ErrWindowForbidden)

	r = PricingRule{Kind: RuleSeasonal}
	require.NoError(t, r.Validate(), "seasonal rules may omit the window")

	r = PricingRule{Kind: RuleSeasonal, Window: &RuleWindow{StartMonth: 13, StartDay: 1, EndMonth: time.July, EndDay: 31}}
	require.ErrorIs(t, r.Validate(), ErrIncompleteWindow)

	r = PricingRule{Kind: RuleDateRange, Window: win}
	require.NoError(t, r.Validate())
}

func TestMultiplierFor(t *testing.T) {
	r := PricingRule{}
	assert.Equal(t, float64(1), r.MultiplierFor(time.Friday), "no map means 1x")

	r.WeekdayMultipliers = map[time.Weekday]float64{time.Friday: 1.2, time.Sunday: 0}
	assert.Equal(t, 1.2, r.MultiplierFor(time.Friday))
	assert.Equal(t, float64(1), r.MultiplierFor(time.Monday), "absent weekday means 1x")
	assert.Equal(t, float64(1), r.MultiplierFor(time.Sunday), "non-positive multiplier is ignored")
}
