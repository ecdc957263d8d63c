package service

import (
	"context"
	"time"

	"github.com/moneybook/moneybook.go/common"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// MonthlySummary is everything the dashboard shows for one month.
type MonthlySummary struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	TransactionCount int             `json:"transaction_count"`
	// NetBalance is the sum of cached balances of the active accounts in
	// scope, not an income minus expense figure.
	NetBalance decimal.Decimal `json:"net_balance"`

	TopCategories      []ledger.CategoryTotal `json:"top_categories"`
	Weeks              [][]*ledger.DayCell    `json:"weeks"`
	RecentTransactions []models.Transaction   `json:"recent_transactions"`
}

// Dashboard builds the monthly summary for a user, optionally narrowed
// to one account (accountId 0 means all accounts).
func (svc *MoneybookService) Dashboard(ctx context.Context, userId int64, year int, month time.Month, accountId int64) (*MonthlySummary, error) {
	summary := &MonthlySummary{
		Year:               year,
		Month:              month,
		TopCategories:      []ledger.CategoryTotal{},
		RecentTransactions: []models.Transaction{},
	}

	if accountId != 0 {
		// A bad account id is indistinguishable from a foreign one.
		if _, err := svc.FindAccount(ctx, userId, accountId); err != nil {
			return nil, err
		}
	}

	loc := svc.TimeLocation()
	start, end := ledger.MonthRange(year, month, loc)

	// Deactivated accounts drop out of the month entirely, matching the
	// net balance below. Columns are alias-qualified because the joined
	// tables also carry user_id and id.
	monthScope := func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Join("JOIN accounts AS account ON account.id = transaction.account_id").
			Where("account.is_active").
			Where("transaction.user_id = ?", userId).
			Where("transaction.occurred_at >= ? AND transaction.occurred_at < ?", start, end)
		if accountId != 0 {
			q = q.Where("transaction.account_id = ?", accountId)
		}
		return q
	}

	err := monthScope(svc.DB.NewSelect().Model((*models.Transaction)(nil))).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0)", common.TxTypeIncoming).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0)", common.TxTypeOutgoing).
		ColumnExpr("COUNT(*)").
		Scan(ctx, &summary.TotalIncome, &summary.TotalExpense, &summary.TransactionCount)
	if err != nil {
		return nil, err
	}

	balanceQuery := svc.DB.NewSelect().Model((*models.Account)(nil)).
		ColumnExpr("COALESCE(SUM(balance), 0)").
		Where("user_id = ? AND is_active", userId)
	if accountId != 0 {
		balanceQuery = balanceQuery.Where("id = ?", accountId)
	}
	if err := balanceQuery.Scan(ctx, &summary.NetBalance); err != nil {
		return nil, err
	}

	var categoryRows []ledger.CategoryTotal
	err = monthScope(svc.DB.NewSelect().Model((*models.Transaction)(nil))).
		ColumnExpr("COALESCE(category.name, ?) AS name", "Uncategorized").
		ColumnExpr("SUM(transaction.amount) AS total").
		ColumnExpr("COUNT(*) AS count").
		Join("LEFT JOIN categories AS category ON category.id = transaction.category_id").
		Where("transaction.type = ?", common.TxTypeOutgoing).
		GroupExpr("COALESCE(category.name, ?)", "Uncategorized").
		OrderExpr("total DESC").
		Limit(5).
		Scan(ctx, &categoryRows)
	if err != nil {
		return nil, err
	}
	summary.TopCategories = ledger.RankCategories(categoryRows, summary.TotalExpense)

	var dayRows []struct {
		Day     int             `bun:"day"`
		Income  decimal.Decimal `bun:"income"`
		Expense decimal.Decimal `bun:"expense"`
	}
	// The day is extracted in the same zone the month bounds were built
	// in, otherwise edge-of-day rows shift to a neighbouring cell.
	err = monthScope(svc.DB.NewSelect().Model((*models.Transaction)(nil))).
		ColumnExpr("EXTRACT(DAY FROM transaction.occurred_at AT TIME ZONE ?)::int AS day", loc.String()).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0) AS income", common.TxTypeIncoming).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0) AS expense", common.TxTypeOutgoing).
		GroupExpr("EXTRACT(DAY FROM transaction.occurred_at AT TIME ZONE ?)", loc.String()).
		Scan(ctx, &dayRows)
	if err != nil {
		return nil, err
	}
	totals := ledger.DayTotals{}
	for _, row := range dayRows {
		totals[row.Day] = &ledger.DayCell{Day: row.Day, Income: row.Income, Expense: row.Expense}
	}
	summary.Weeks = ledger.CalendarWeeks(year, month, totals)

	recentQuery := svc.DB.NewSelect().Model(&summary.RecentTransactions).
		Join("JOIN accounts AS account ON account.id = transaction.account_id").
		Where("account.is_active").
		Where("transaction.user_id = ?", userId)
	if accountId != 0 {
		recentQuery = recentQuery.Where("transaction.account_id = ?", accountId)
	}
	err = recentQuery.OrderExpr("transaction.occurred_at DESC, transaction.id DESC").Limit(4).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return summary, nil
}
