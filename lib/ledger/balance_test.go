package ledger

import (
	"testing"

	"github.com/moneybook/moneybook.go/common"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestApplyIncoming(t *testing.T) {
	balance := Apply(amt("100000"), common.TxTypeIncoming, amt("5000"))
	assert.True(t, amt("105000").Equal(balance))
}

func TestApplyOutgoing(t *testing.T) {
	balance := Apply(amt("100000"), common.TxTypeOutgoing, amt("5000"))
	assert.True(t, amt("95000").Equal(balance))
}

func TestReverseIsInverseOfApply(t *testing.T) {
	opening := amt("1234.56")
	for _, txType := range []string{common.TxTypeIncoming, common.TxTypeOutgoing} {
		applied := Apply(opening, txType, amt("78.90"))
		assert.True(t, opening.Equal(Reverse(applied, txType, amt("78.90"))))
	}
}

func TestEditAmountMovesBalanceByDelta(t *testing.T) {
	// create OUT 5000, then edit the amount to 10000: reverse + apply
	balance := Apply(amt("100000"), common.TxTypeOutgoing, amt("5000"))
	assert.True(t, amt("95000").Equal(balance))

	balance = Reverse(balance, common.TxTypeOutgoing, amt("5000"))
	balance = Apply(balance, common.TxTypeOutgoing, amt("10000"))
	assert.True(t, amt("90000").Equal(balance))

	// delete restores the opening balance exactly
	balance = Reverse(balance, common.TxTypeOutgoing, amt("10000"))
	assert.True(t, amt("100000").Equal(balance))
}

func TestValidateAmount(t *testing.T) {
	assert.NoError(t, ValidateAmount(amt("0.01")))
	assert.Error(t, ValidateAmount(amt("0")))
	assert.Error(t, ValidateAmount(amt("-10")))
	assert.Error(t, ValidateAmount(amt("10000000000.01")))
}

func TestValidateTxType(t *testing.T) {
	assert.NoError(t, ValidateTxType("IN"))
	assert.NoError(t, ValidateTxType("OUT"))
	assert.Error(t, ValidateTxType("BOTH"))
	assert.Error(t, ValidateTxType(""))
}
