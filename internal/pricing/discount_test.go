package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gocamp/campsite-reservation/internal/model"
)

func TestEvaluateDiscountsNilRule(t *testing.T) {
	assert.Nil(t, EvaluateDiscounts(100000, 10, 60, nil))
}

func TestEvaluateDiscountsZeroSubtotal(t *testing.T) {
	r := baseRule(1, 50000)
	r.LongStayMinNights = 3
	r.LongStayRate = 0.10
	assert.Nil(t, EvaluateDiscounts(0, 10, 60, &r))
}

func TestEvaluateDiscountsThresholdsAreInclusive(t *testing.T) {
	r := baseRule(1, 50000)
	r.LongStayMinNights = 3
	r.LongStayRate = 0.10
	r.EarlyBirdMinDays = 30
	r.EarlyBirdRate = 0.05

	lines := EvaluateDiscounts(150000, 3, 30, &r)
	assert.Len(t, lines, 2, "exactly meeting both thresholds triggers both")

	lines = EvaluateDiscounts(150000, 2, 29, &r)
	assert.Empty(t, lines)
}

func TestEvaluateDiscountsRoundsAmounts(t *testing.T) {
	r := baseRule(1, 50000)
	r.LongStayMinNights = 3
	r.LongStayRate = 0.10

	// 33335 x 0.10 = 3333.5 rounds to 3334 off.
	lines := EvaluateDiscounts(33335, 3, 0, &r)
	assert.Equal(t, []model.DiscountLine{{Type: model.DiscountLongStay, Rate: 0.10, Amount: -3334}}, lines)
}
