package ledger

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBadAccountNumber is wrapped by every ValidateAccountNumber failure
// so callers can map the whole class to a single response.
var ErrBadAccountNumber = errors.New("invalid account number")

// MaskAccountNumber hides the middle of an account number for display.
//
//	"110-123-456789" -> "110-***-6789"
//	"1101234567890"  -> "110***7890"
//	"12345"          -> "***2345"
//	"1234"           -> "***"
func MaskAccountNumber(number string) string {
	if number == "" {
		return ""
	}

	parts := strings.Split(number, "-")
	if len(parts) >= 2 {
		last := parts[len(parts)-1]
		if len(last) > 4 {
			last = last[len(last)-4:]
		}
		return fmt.Sprintf("%s-***-%s", parts[0], last)
	}

	if len(number) > 8 {
		return fmt.Sprintf("%s***%s", number[:3], number[len(number)-4:])
	}
	if len(number) > 4 {
		return "***" + number[len(number)-4:]
	}
	return "***"
}

// ValidateAccountNumber enforces the account number format: digits and
// hyphens only, at least 8 digits overall.
func ValidateAccountNumber(number string) error {
	digits := 0
	for _, c := range number {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '-':
		default:
			return fmt.Errorf("%w: only digits and hyphens allowed", ErrBadAccountNumber)
		}
	}
	if digits < 8 {
		return fmt.Errorf("%w: at least 8 digits required", ErrBadAccountNumber)
	}
	return nil
}
