package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "110-***-6789", MaskAccountNumber("110-123-456789"))
	assert.Equal(t, "110-***-6789", MaskAccountNumber("110-456789"))
	assert.Equal(t, "110***7890", MaskAccountNumber("1101234567890"))
	assert.Equal(t, "***5678", MaskAccountNumber("12345678"))
	assert.Equal(t, "***2345", MaskAccountNumber("12345"))
	assert.Equal(t, "***", MaskAccountNumber("1234"))
	assert.Equal(t, "", MaskAccountNumber(""))
}

func TestValidateAccountNumber(t *testing.T) {
	assert.NoError(t, ValidateAccountNumber("110-123-456789"))
	assert.NoError(t, ValidateAccountNumber("12345678"))
	assert.Error(t, ValidateAccountNumber("110 123 456789"))
	assert.Error(t, ValidateAccountNumber("12a45678"))
	assert.Error(t, ValidateAccountNumber("123-4567"))
}
