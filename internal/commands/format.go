package commands

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// formatMoney renders an amount with its currency's own grouping and
// fraction rules (KRW has none, USD has two decimals).
func formatMoney(d decimal.Decimal, cur model.Currency) string {
	c := money.New(0, string(cur)).Currency()
	return c.Formatter().Format(d.Shift(int32(c.Fraction)).Round(0).IntPart())
}
