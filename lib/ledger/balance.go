// Package ledger holds the pure bookkeeping rules: signed balance deltas,
// account-number masking and the month/calendar math behind the dashboard.
// Nothing here touches the database or the clock.
package ledger

import (
	"errors"
	"fmt"

	"github.com/moneybook/moneybook.go/common"
	"github.com/shopspring/decimal"
)

// MaxAmount is the upper bound for a single transaction amount.
var MaxAmount = decimal.New(1, 10) // 10,000,000,000

// ErrBadAmount is wrapped by every ValidateAmount failure.
var ErrBadAmount = errors.New("invalid amount")

// Signed returns the amount with the sign implied by the transaction type:
// positive for IN, negative for OUT.
func Signed(txType string, amount decimal.Decimal) decimal.Decimal {
	if txType == common.TxTypeOutgoing {
		return amount.Neg()
	}
	return amount
}

// Apply returns the account balance after posting a transaction.
func Apply(balance decimal.Decimal, txType string, amount decimal.Decimal) decimal.Decimal {
	return balance.Add(Signed(txType, amount))
}

// Reverse undoes a previously applied transaction. Reverse is the exact
// inverse of Apply: Reverse(Apply(b, t, a), t, a) == b.
func Reverse(balance decimal.Decimal, txType string, amount decimal.Decimal) decimal.Decimal {
	return balance.Sub(Signed(txType, amount))
}

// ValidateAmount checks the shared amount rules: strictly positive and not
// absurdly large.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: must be greater than zero", ErrBadAmount)
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: exceeds the maximum of %s", ErrBadAmount, MaxAmount)
	}
	return nil
}

// ValidateTxType checks the transaction direction.
func ValidateTxType(txType string) error {
	if txType != common.TxTypeIncoming && txType != common.TxTypeOutgoing {
		return fmt.Errorf("invalid transaction type %q", txType)
	}
	return nil
}
