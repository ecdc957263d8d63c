package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankCategories(t *testing.T) {
	rows := []CategoryTotal{
		{Name: "food", Total: amt("300000"), Count: 15},
		{Name: "transport", Total: amt("150000"), Count: 8},
		{Name: "rent", Total: amt("50000"), Count: 1},
	}
	total := amt("500000")

	ranked := RankCategories(rows, total)

	assert.InDelta(t, 100.0, ranked[0].Percent, 1e-9)
	assert.InDelta(t, 50.0, ranked[1].Percent, 1e-9)
	assert.InDelta(t, 60.0, ranked[0].Ratio, 1e-9)
	assert.InDelta(t, 30.0, ranked[1].Ratio, 1e-9)
	assert.InDelta(t, 10.0, ranked[2].Ratio, 1e-9)

	// ratios cover the whole expense when the rows do
	sum := ranked[0].Ratio + ranked[1].Ratio + ranked[2].Ratio
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestRankCategoriesZeroExpense(t *testing.T) {
	rows := []CategoryTotal{{Name: "food", Total: amt("0")}}
	ranked := RankCategories(rows, amt("0"))
	assert.Zero(t, ranked[0].Percent)
	assert.Zero(t, ranked[0].Ratio)

	assert.Empty(t, RankCategories(nil, amt("100")))
}
