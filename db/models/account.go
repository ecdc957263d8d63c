package models

import (
	"context"
	"time"

	"github.com/moneybook/moneybook.go/lib/ledger"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Account : Account Model
//
// Balance is a cached figure: it must always equal the account's opening
// balance plus the signed sum of its live transactions. It is only ever
// written inside the same database transaction as the transaction row that
// moved it.
type Account struct {
	ID            int64           `json:"id" bun:",pk,autoincrement"`
	UserID        int64           `json:"user_id" bun:",notnull"`
	User          *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	Name          string          `json:"name" validate:"required,max=100"`
	BankName      string          `json:"bank_name" validate:"max=50"`
	AccountNumber string          `json:"-" bun:",nullzero"`
	Balance       decimal.Decimal `json:"balance" bun:"type:numeric(14,2),notnull,default:0"`
	IsActive      bool            `json:"is_active" bun:",notnull,default:true"`
	CreatedAt     time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt     bun.NullTime    `json:"updated_at"`
}

func (a *Account) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		a.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

// MaskedNumber returns the display form of the account number. The raw
// number never leaves the model.
func (a *Account) MaskedNumber() string {
	return ledger.MaskAccountNumber(a.AccountNumber)
}

var _ bun.BeforeAppendModelHook = (*Account)(nil)
