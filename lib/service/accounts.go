package service

import (
	"context"
	"fmt"

	"github.com/moneybook/moneybook.go/common"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/shopspring/decimal"
)

func (svc *MoneybookService) CreateAccount(ctx context.Context, userId int64, name, bankName, accountNumber string, openingBalance decimal.Decimal) (*models.Account, error) {
	if err := ledger.ValidateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	if openingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: opening balance cannot be negative", ledger.ErrBadAmount)
	}

	account := &models.Account{
		UserID:        userId,
		Name:          name,
		BankName:      bankName,
		AccountNumber: accountNumber,
		Balance:       openingBalance,
		IsActive:      true,
	}
	_, err := svc.DB.NewInsert().Model(account).Exec(ctx)
	return account, err
}

// AccountsFor returns the user's active accounts, newest first.
func (svc *MoneybookService) AccountsFor(ctx context.Context, userId int64) ([]models.Account, error) {
	accounts := []models.Account{}
	err := svc.DB.NewSelect().Model(&accounts).
		Where("user_id = ? AND is_active", userId).
		OrderExpr("created_at DESC").
		Scan(ctx)
	return accounts, err
}

// FindAccount looks up one account scoped to the owner. Another user's
// account comes back as sql.ErrNoRows, indistinguishable from a missing
// row.
func (svc *MoneybookService) FindAccount(ctx context.Context, userId, accountId int64) (*models.Account, error) {
	account := &models.Account{}
	err := svc.DB.NewSelect().Model(account).
		Where("id = ? AND user_id = ? AND is_active", accountId, userId).
		Limit(1).Scan(ctx)
	return account, err
}

func (svc *MoneybookService) UpdateAccount(ctx context.Context, userId, accountId int64, name, bankName, accountNumber string) (*models.Account, error) {
	if err := ledger.ValidateAccountNumber(accountNumber); err != nil {
		return nil, err
	}
	account, err := svc.FindAccount(ctx, userId, accountId)
	if err != nil {
		return nil, err
	}
	account.Name = name
	account.BankName = bankName
	account.AccountNumber = accountNumber
	_, err = svc.DB.NewUpdate().Model(account).WherePK().Exec(ctx)
	return account, err
}

// DeactivateAccount soft-deletes: the row and its transactions stay, the
// account just stops showing up in lists, dashboards and transaction
// target choices.
func (svc *MoneybookService) DeactivateAccount(ctx context.Context, userId, accountId int64) error {
	account, err := svc.FindAccount(ctx, userId, accountId)
	if err != nil {
		return err
	}
	account.IsActive = false
	_, err = svc.DB.NewUpdate().Model(account).WherePK().Exec(ctx)
	return err
}

// AccountsSummary is the header block of the account list: all-time
// income and expense totals plus net assets as the sum of active cached
// balances.
type AccountsSummary struct {
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	NetAssets    decimal.Decimal `json:"net_assets"`
}

func (svc *MoneybookService) AccountsSummaryFor(ctx context.Context, userId int64) (*AccountsSummary, error) {
	summary := &AccountsSummary{}

	err := svc.DB.NewSelect().Model((*models.Transaction)(nil)).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0)", common.TxTypeIncoming).
		ColumnExpr("COALESCE(SUM(amount) FILTER (WHERE type = ?), 0)", common.TxTypeOutgoing).
		Where("user_id = ?", userId).
		Scan(ctx, &summary.TotalIncome, &summary.TotalExpense)
	if err != nil {
		return nil, err
	}

	err = svc.DB.NewSelect().Model((*models.Account)(nil)).
		ColumnExpr("COALESCE(SUM(balance), 0)").
		Where("user_id = ? AND is_active", userId).
		Scan(ctx, &summary.NetAssets)
	return summary, err
}
