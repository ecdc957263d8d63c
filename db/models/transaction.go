package models

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Transaction : Transaction Model
type Transaction struct {
	ID         int64           `json:"id" bun:",pk,autoincrement"`
	UserID     int64           `json:"user_id" bun:",notnull"`
	User       *User           `json:"-" bun:"rel:belongs-to,join:user_id=id"`
	AccountID  int64           `json:"account_id" bun:",notnull" validate:"required"`
	Account    *Account        `json:"-" bun:"rel:belongs-to,join:account_id=id"`
	CategoryID int64           `json:"category_id,omitempty" bun:",nullzero"`
	Category   *Category       `json:"-" bun:"rel:belongs-to,join:category_id=id"`
	Type       string          `json:"type" bun:",notnull" validate:"required,oneof=IN OUT"`
	Amount     decimal.Decimal `json:"amount" bun:"type:numeric(14,2),notnull"`
	OccurredAt time.Time       `json:"occurred_at" bun:",notnull" validate:"required"`
	Merchant   string          `json:"merchant" bun:",nullzero" validate:"max=100"`
	Memo       string          `json:"memo" bun:",nullzero"`
	CreatedAt  time.Time       `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt  bun.NullTime    `json:"updated_at"`
}

func (t *Transaction) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		t.UpdatedAt = bun.NullTime{Time: time.Now()}
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Transaction)(nil)
