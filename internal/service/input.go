package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePrice parses user-entered price text into a non-negative decimal
func ParsePrice(text string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("%w: price is required", ErrValidation)
	}
	price, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price must be a number", ErrValidation)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	return price, nil
}

// ParseQuantity parses user-entered quantity text into a non-negative integer
func ParseQuantity(text string) (int, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: quantity is required", ErrValidation)
	}
	qty, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: quantity must be a whole number", ErrValidation)
	}
	if qty < 0 {
		return 0, fmt.Errorf("%w: quantity must not be negative", ErrValidation)
	}
	return qty, nil
}
