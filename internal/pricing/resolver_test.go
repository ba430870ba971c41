package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocamp/campsite-reservation/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseRule(id uint64, price int64) model.PricingRule {
	return model.PricingRule{ID: id, Kind: model.RuleBase, Priority: 0, Active: true, BasePrice: price}
}

func julyRule(id uint64, kind model.RuleKind, priority int, price int64) model.PricingRule {
	return model.PricingRule{
		ID: id, Kind: kind, Priority: priority, Active: true, BasePrice: price,
		Window: &model.RuleWindow{StartMonth: time.July, StartDay: 1, EndMonth: time.July, EndDay: 31},
	}
}

func TestResolveEmptyRuleList(t *testing.T) {
	e := NewEngine(nil)
	_, err := e.Resolve(nil, date(2026, time.July, 10))
	require.ErrorIs(t, err, ErrNoActiveRules)
}

func TestResolvePriorityOrder(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{
		julyRule(2, model.RuleSeasonal, 10, 80000),
		baseRule(1, 50000),
	}

	got, err := e.Resolve(rules, date(2026, time.July, 10))
	require.NoError(t, err)
	assert.Equal(t, uint64(2), got.ID, "windowed rule wins inside its window")

	got, err = e.Resolve(rules, date(2026, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID, "base rule applies outside the window")
}

func TestResolveFallbackToLowestPriority(t *testing.T) {
	// A list without any applicable rule falls back to its last entry
	// rather than failing, so a misconfigured site still prices.
	e := NewEngine(nil)
	rules := []model.PricingRule{julyRule(7, model.RuleDateRange, 5, 80000)}

	got, err := e.Resolve(rules, date(2026, time.March, 10))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), got.ID)
}

func TestResolveWindowlessSeasonalBySeasonTag(t *testing.T) {
	e := NewEngine(nil)
	rules := []model.PricingRule{
		{ID: 3, Kind: model.RuleSeasonal, Priority: 10, Active: true, BasePrice: 90000, SeasonTag: model.SeasonPeak},
		baseRule(1, 50000),
	}

	got, err := e.Resolve(rules, date(2026, time.August, 5))
	require.NoError(t, err)
	assert.Equal(t, uint64(3), got.ID, "August classifies as PEAK")

	got, err = e.Resolve(rules, date(2026, time.May, 5))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID, "May is off-peak, seasonal rule skipped")
}

func TestResolveSpecialEventRequiresWindowMatch(t *testing.T) {
	e := NewEngine(nil)
	event := model.PricingRule{
		ID: 4, Kind: model.RuleSpecialEvent, Priority: 20, Active: true, BasePrice: 120000,
		Window: &model.RuleWindow{StartMonth: time.October, StartDay: 3, EndMonth: time.October, EndDay: 5},
	}
	rules := []model.PricingRule{event, baseRule(1, 50000)}

	got, err := e.Resolve(rules, date(2026, time.October, 4))
	require.NoError(t, err)
	assert.Equal(t, uint64(4), got.ID)

	got, err = e.Resolve(rules, date(2026, time.October, 6))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.ID)
}

func TestSeasonClassifierBands(t *testing.T) {
	c := MonthBandClassifier{}
	assert.Equal(t, model.SeasonPeak, c.Classify(date(2026, time.July, 1)))
	assert.Equal(t, model.SeasonPeak, c.Classify(date(2026, time.August, 31)))
	assert.Equal(t, model.SeasonHigh, c.Classify(date(2026, time.June, 15)))
	assert.Equal(t, model.SeasonHigh, c.Classify(date(2026, time.September, 15)))
	assert.Equal(t, model.SeasonOffPeak, c.Classify(date(2026, time.January, 15)))
}
