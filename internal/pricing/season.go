// Package pricing implements the nightly rule resolution and price
// composition engine for campsite stays.  All computation is pure and
// in-memory: rules are loaded by the repository layer and passed in,
// and nothing here touches the database or takes locks.
package pricing

import (
	"time"

	"github.com/gocamp/campsite-reservation/internal/model"
)

// SeasonClassifier maps a calendar date to a season tag.  SEASONAL
// rules without an explicit month/day window apply whenever the
// classified season matches their tag.
type SeasonClassifier interface {
	Classify(date time.Time) model.Season
}

// MonthBandClassifier is the default classifier: July and August are
// peak season, June and September are high season, everything else is
// off-peak.
type MonthBandClassifier struct{}

func (MonthBandClassifier) Classify(date time.Time) model.Season {
	switch date.Month() {
	case time.July, time.August:
		return model.SeasonPeak
	case time.June, time.September:
		return model.SeasonHigh
	default:
		return model.SeasonOffPeak
	}
}
