package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/moneybook/moneybook.go/common"
	"github.com/moneybook/moneybook.go/db/models"
	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/uptrace/bun"
)

// TransactionFilter narrows a transaction listing. Zero values mean "no
// filter". EndDate is inclusive.
type TransactionFilter struct {
	AccountID  int64
	CategoryID int64
	Type       string
	StartDate  time.Time
	EndDate    time.Time
	Query      string
	Limit      int
	Offset     int
}

// lockAccount takes a row lock on the account so concurrent postings
// against the same account serialize. Scoped to the owner, so a foreign
// account id surfaces as sql.ErrNoRows.
func (svc *MoneybookService) lockAccount(ctx context.Context, tx bun.IDB, userId, accountId int64, mustBeActive bool) (*models.Account, error) {
	account := &models.Account{}
	q := tx.NewSelect().Model(account).
		Where("id = ? AND user_id = ?", accountId, userId)
	if mustBeActive {
		q = q.Where("is_active")
	}
	err := q.For("UPDATE").Limit(1).Scan(ctx)
	return account, err
}

func (svc *MoneybookService) checkCategory(ctx context.Context, tx bun.IDB, userId, categoryId int64, txType string) error {
	if categoryId == 0 {
		return nil
	}
	category, err := svc.findVisibleCategory(ctx, tx, userId, categoryId)
	if err != nil {
		return err
	}
	if category.Type != common.CategoryTypeBoth && category.Type != txType {
		return errBadCategoryType
	}
	return nil
}

// CreateTransaction posts a new transaction and applies its delta to the
// account balance in the same database transaction.
func (svc *MoneybookService) CreateTransaction(ctx context.Context, transaction *models.Transaction) error {
	if err := ledger.ValidateTxType(transaction.Type); err != nil {
		return err
	}
	if err := ledger.ValidateAmount(transaction.Amount); err != nil {
		return err
	}

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		account, err := svc.lockAccount(ctx, tx, transaction.UserID, transaction.AccountID, true)
		if err != nil {
			return err
		}
		if err := svc.checkCategory(ctx, tx, transaction.UserID, transaction.CategoryID, transaction.Type); err != nil {
			return err
		}
		if _, err := tx.NewInsert().Model(transaction).Exec(ctx); err != nil {
			return err
		}
		account.Balance = ledger.Apply(account.Balance, transaction.Type, transaction.Amount)
		_, err = tx.NewUpdate().Model(account).Column("balance", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	svc.publishTransactionEvent(common.EventTransactionCreated, transaction)
	return nil
}

// UpdateTransaction rewrites a transaction. The old delta is reversed on
// the old account and the new delta applied to the new one. Both rows
// are locked in ascending id order so two updates moving money between
// the same pair of accounts cannot deadlock.
func (svc *MoneybookService) UpdateTransaction(ctx context.Context, userId, transactionId int64, update *models.Transaction) (*models.Transaction, error) {
	if err := ledger.ValidateTxType(update.Type); err != nil {
		return nil, err
	}
	if err := ledger.ValidateAmount(update.Amount); err != nil {
		return nil, err
	}

	transaction := &models.Transaction{}
	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(transaction).
			Where("id = ? AND user_id = ?", transactionId, userId).
			Limit(1).Scan(ctx)
		if err != nil {
			return err
		}

		var oldAccount, newAccount *models.Account
		if update.AccountID == transaction.AccountID {
			oldAccount, err = svc.lockAccount(ctx, tx, userId, transaction.AccountID, false)
			if err != nil {
				return err
			}
			newAccount = oldAccount
		} else if transaction.AccountID < update.AccountID {
			if oldAccount, err = svc.lockAccount(ctx, tx, userId, transaction.AccountID, false); err != nil {
				return err
			}
			if newAccount, err = svc.lockAccount(ctx, tx, userId, update.AccountID, true); err != nil {
				return err
			}
		} else {
			if newAccount, err = svc.lockAccount(ctx, tx, userId, update.AccountID, true); err != nil {
				return err
			}
			if oldAccount, err = svc.lockAccount(ctx, tx, userId, transaction.AccountID, false); err != nil {
				return err
			}
		}

		if err := svc.checkCategory(ctx, tx, userId, update.CategoryID, update.Type); err != nil {
			return err
		}

		oldAccount.Balance = ledger.Reverse(oldAccount.Balance, transaction.Type, transaction.Amount)
		newAccount.Balance = ledger.Apply(newAccount.Balance, update.Type, update.Amount)

		transaction.AccountID = update.AccountID
		transaction.CategoryID = update.CategoryID
		transaction.Type = update.Type
		transaction.Amount = update.Amount
		transaction.OccurredAt = update.OccurredAt
		transaction.Merchant = update.Merchant
		transaction.Memo = update.Memo
		if _, err := tx.NewUpdate().Model(transaction).WherePK().Exec(ctx); err != nil {
			return err
		}

		if _, err := tx.NewUpdate().Model(oldAccount).Column("balance", "updated_at").WherePK().Exec(ctx); err != nil {
			return err
		}
		if newAccount != oldAccount {
			if _, err := tx.NewUpdate().Model(newAccount).Column("balance", "updated_at").WherePK().Exec(ctx); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	svc.publishTransactionEvent(common.EventTransactionUpdated, transaction)
	return transaction, nil
}

// DeleteTransaction removes a transaction, reverses its delta and drops
// the attached receipt (record and blob) with it.
func (svc *MoneybookService) DeleteTransaction(ctx context.Context, userId, transactionId int64) error {
	transaction := &models.Transaction{}
	var blobPath string

	err := svc.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(transaction).
			Where("id = ? AND user_id = ?", transactionId, userId).
			Limit(1).Scan(ctx)
		if err != nil {
			return err
		}

		account, err := svc.lockAccount(ctx, tx, userId, transaction.AccountID, false)
		if err != nil {
			return err
		}

		attachment := &models.Attachment{}
		err = tx.NewSelect().Model(attachment).
			Where("transaction_id = ?", transaction.ID).
			Limit(1).Scan(ctx)
		if err == nil {
			blobPath = attachment.StoragePath
			if _, err := tx.NewDelete().Model(attachment).WherePK().Exec(ctx); err != nil {
				return err
			}
		} else if err != sql.ErrNoRows {
			return err
		}

		if _, err := tx.NewDelete().Model(transaction).WherePK().Exec(ctx); err != nil {
			return err
		}

		account.Balance = ledger.Reverse(account.Balance, transaction.Type, transaction.Amount)
		_, err = tx.NewUpdate().Model(account).Column("balance", "updated_at").WherePK().Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}

	// The record is gone either way, a stray blob is only wasted space.
	if blobPath != "" {
		if err := svc.FileStore.Delete(ctx, blobPath); err != nil {
			svc.Logger.Errorf("Failed to delete blob %s: %v", blobPath, err)
		}
	}

	svc.publishTransactionEvent(common.EventTransactionDeleted, transaction)
	return nil
}

// FindTransaction looks up one transaction scoped to the owner.
func (svc *MoneybookService) FindTransaction(ctx context.Context, userId, transactionId int64) (*models.Transaction, error) {
	transaction := &models.Transaction{}
	err := svc.DB.NewSelect().Model(transaction).
		Where("id = ? AND user_id = ?", transactionId, userId).
		Limit(1).Scan(ctx)
	return transaction, err
}

// TransactionsFor lists the user's transactions, newest first, narrowed
// by the filter.
func (svc *MoneybookService) TransactionsFor(ctx context.Context, userId int64, filter TransactionFilter) ([]models.Transaction, error) {
	transactions := []models.Transaction{}
	q := svc.DB.NewSelect().Model(&transactions).
		Where("user_id = ?", userId)

	if filter.AccountID != 0 {
		q = q.Where("account_id = ?", filter.AccountID)
	}
	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Type != "" {
		if err := ledger.ValidateTxType(filter.Type); err != nil {
			return nil, err
		}
		q = q.Where("type = ?", filter.Type)
	}
	if !filter.StartDate.IsZero() {
		q = q.Where("occurred_at >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		q = q.Where("occurred_at < ?", filter.EndDate.AddDate(0, 0, 1))
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		q = q.Where("(memo ILIKE ? OR merchant ILIKE ?)", pattern, pattern)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	if limit > 500 {
		limit = 500
	}

	err := q.OrderExpr("occurred_at DESC, id DESC").
		Limit(limit).Offset(filter.Offset).
		Scan(ctx)
	return transactions, err
}
