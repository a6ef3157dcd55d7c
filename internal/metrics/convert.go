// Package metrics derives every portfolio figure from a record-set
// snapshot: balances, valuations, allocation, drift, the net-worth series,
// and monthly cash flow. All functions are pure; nothing here performs I/O
// or mutates its inputs, and everything is recomputed from scratch on each
// call.
package metrics

import (
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// Convert translates an amount into the base currency. Same-currency
// amounts pass through unchanged; USD->KRW multiplies by the manual rate
// and KRW->USD divides by it. A currency outside the closed {KRW, USD} set
// (unreachable under valid input, since the persistence boundary rejects
// it) passes through unconverted, as does a conversion with a zero rate.
func Convert(amount decimal.Decimal, from model.Currency, s model.Settings) decimal.Decimal {
	if from == s.BaseCurrency {
		return amount
	}
	rate := s.USDKRWRate.Decimal
	if rate.IsZero() {
		return amount
	}
	switch {
	case from == model.USD && s.BaseCurrency == model.KRW:
		return amount.Mul(rate)
	case from == model.KRW && s.BaseCurrency == model.USD:
		return amount.Div(rate)
	default:
		return amount
	}
}
