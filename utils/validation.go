package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zapproject/zappy-sub000/units"
)

// ValidateAmount checks if an amount string is a valid non-negative decimal
func ValidateAmount(amount string) (*decimal.Decimal, error) {
	if amount == "" {
		return nil, fmt.Errorf("amount cannot be empty")
	}

	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	if dec.IsNegative() {
		return nil, fmt.Errorf("amount cannot be negative")
	}

	return &dec, nil
}

// ParseAmount reads an amount with an optional denomination, e.g. "1.5 ether"
// or "300", and returns it in wei
func ParseAmount(amount string) (decimal.Decimal, error) {
	fields := strings.Fields(amount)

	switch len(fields) {
	case 1:
		dec, err := ValidateAmount(fields[0])
		if err != nil {
			return decimal.Zero, err
		}
		return *dec, nil

	case 2:
		dec, err := ValidateAmount(fields[0])
		if err != nil {
			return decimal.Zero, err
		}
		wei, ok := units.Apply(*dec, fields[1])
		if !ok {
			return decimal.Zero, fmt.Errorf("unknown denomination %q", fields[1])
		}
		return wei, nil

	default:
		return decimal.Zero, fmt.Errorf("invalid amount %q", amount)
	}
}

// ValidateWhole parses a whole number such as a supply position or dot count
func ValidateWhole(value string) (decimal.Decimal, error) {
	dec, err := ValidateAmount(value)
	if err != nil {
		return decimal.Zero, err
	}
	if !dec.IsInteger() {
		return decimal.Zero, fmt.Errorf("%s is not a whole number", value)
	}
	return *dec, nil
}

// FormatAmount formats a wei amount in the given denomination, e.g.
// "1.5 ether"
func FormatAmount(wei decimal.Decimal, suffix string) (string, error) {
	amount, ok := units.FromWei(wei, suffix)
	if !ok {
		return "", fmt.Errorf("unknown denomination %q", suffix)
	}
	return amount.String() + " " + strings.ToLower(suffix), nil
}
