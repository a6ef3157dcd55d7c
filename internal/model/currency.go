package model

import "fmt"

// Currency is an ISO-4217 code. The set is closed: only KRW and USD are
// supported, and the persistence boundary rejects anything else.
type Currency string

const (
	KRW Currency = "KRW"
	USD Currency = "USD"
)

// ParseCurrency validates a currency code.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case KRW, USD:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("unknown currency: %q", s)
	}
}

// UnmarshalJSON rejects currency codes outside the closed set.
func (c *Currency) UnmarshalJSON(data []byte) error {
	s, err := unquote(data)
	if err != nil {
		return fmt.Errorf("currency: %w", err)
	}
	cur, err := ParseCurrency(s)
	if err != nil {
		return err
	}
	*c = cur
	return nil
}
