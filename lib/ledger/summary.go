package ledger

import "github.com/shopspring/decimal"

// CategoryTotal is one row of the top-categories breakdown: expense total
// and transaction count per category name, with the two percentage figures
// the bar chart needs.
type CategoryTotal struct {
	Name    string          `json:"name"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Percent float64         `json:"percentage"`    // of the largest category, bar width
	Ratio   float64         `json:"expense_ratio"` // of total expense
}

// RankCategories fills the percentage fields of rows already sorted by
// descending total. The largest category is 100% wide; each ratio is the
// share of totalExpense. Zero totals leave all percentages at zero.
func RankCategories(rows []CategoryTotal, totalExpense decimal.Decimal) []CategoryTotal {
	if len(rows) == 0 || !totalExpense.IsPositive() {
		return rows
	}
	max := rows[0].Total
	for i := range rows {
		if max.IsPositive() {
			rows[i].Percent, _ = rows[i].Total.Div(max).Mul(decimal.NewFromInt(100)).Float64()
		}
		rows[i].Ratio, _ = rows[i].Total.Div(totalExpense).Mul(decimal.NewFromInt(100)).Float64()
	}
	return rows
}
