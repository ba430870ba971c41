package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// ErrNoActiveRules is returned when a site has no active pricing rules
// at all.  This signals a data-configuration defect upstream; pricing
// never silently defaults to zero or an arbitrary base.
var ErrNoActiveRules = errors.New("pricing: no active rules for site")

// NoApplicablePricingError reports a night for which no rule resolved
// and no fallback existed.  The whole computation aborts; no partial
// breakdown leaves the engine.
type NoApplicablePricingError struct {
	Date time.Time
}

func (e *NoApplicablePricingError) Error() string {
	return fmt.Sprintf("pricing: no applicable rule for %s", e.Date.Format("2006-01-02"))
}

// Engine resolves rules and composes price breakdowns.  The zero value
// is not usable; construct with NewEngine.
type Engine struct {
	seasons SeasonClassifier
}

// NewEngine returns an Engine using the given season classifier, or the
// default month-band classifier when nil is passed.
func NewEngine(seasons SeasonClassifier) *Engine {
	if seasons == nil {
		seasons = MonthBandClassifier{}
	}
	return &Engine{seasons: seasons}
}

// Resolve picks the single rule applicable on date from a list already
// ordered by priority descending (ties keep the store's order).  The
// first applicable rule wins; when none applies the lowest-priority
// rule in the list acts as the fallback.  An empty list is a hard
// error.
func (e *Engine) Resolve(rules []model.PricingRule, date time.Time) (*model.PricingRule, error) {
	if len(rules) == 0 {
		return nil, ErrNoActiveRules
	}
	for i := range rules {
		if e.applies(&rules[i], date) {
			return &rules[i], nil
		}
	}
	// fallback: the lowest-priority rule, typically a BASE rule
	return &rules[len(rules)-1], nil
}

// applies runs the applicability test for one rule on one date.
func (e *Engine) applies(r *model.PricingRule, date time.Time) bool {
	switch r.Kind {
	case model.RuleBase:
		return true
	case model.RuleSeasonal:
		if r.Window != nil {
			return r.Window.Contains(date)
		}
		// windowless seasonal rules match by season classification alone
		return r.SeasonTag != "" && e.seasons.Classify(date) == r.SeasonTag
	case model.RuleDateRange, model.RuleSpecialEvent:
		return r.Window != nil && r.Window.Contains(date)
	}
	return false
}
