package metrics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneymap-dev/moneymap/internal/model"
)

// NetWorthPoint is one month of the simplified net-worth series.
type NetWorthPoint struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

// ComputeNetWorthSeries builds one bucket per calendar month from the month
// of the earliest transaction through the current month. The running total
// is seeded with the base-currency sum of all opening balances; each
// transaction adds its signed base-currency effect to its month; buckets
// accumulate across the month sequence. Positions are not tracked
// historically, so the current total position market value lands entirely
// in the final month. Transactions referencing a missing account are skipped
// and do not anchor the series start; no countable transactions means an
// empty series.
func ComputeNetWorthSeries(transactions []model.Transaction, accounts []model.Account, valuations []PositionValuation, settings model.Settings) []NetWorthPoint {
	currencies := make(map[string]model.Currency, len(accounts))
	seed := decimal.Zero
	for _, a := range accounts {
		currencies[a.ID] = a.Currency
		seed = seed.Add(Convert(a.OpeningBalance.Decimal, a.Currency, settings))
	}

	var earliest model.Date
	buckets := make(map[string]decimal.Decimal)
	for _, t := range transactions {
		cur, ok := currencies[t.AccountID]
		if !ok {
			continue
		}
		if earliest.IsZero() || t.Date.Before(earliest) {
			earliest = t.Date
		}
		key := t.Date.MonthKey()
		buckets[key] = buckets[key].Add(Convert(t.Signed().Decimal, cur, settings))
	}
	if earliest.IsZero() {
		return nil
	}

	positionTotal := decimal.Zero
	for _, v := range valuations {
		positionTotal = positionTotal.Add(v.BaseMarketValue)
	}

	months := monthRange(earliest, model.Today())
	out := make([]NetWorthPoint, 0, len(months))
	running := seed
	for i, m := range months {
		running = running.Add(buckets[m])
		if i == len(months)-1 {
			running = running.Add(positionTotal)
		}
		out = append(out, NetWorthPoint{Month: m, Value: running})
	}
	return out
}

// monthRange lists month keys from the month of `from` through the month of
// `to`, inclusive. Empty when `from` is in a later month than `to`.
func monthRange(from, to model.Date) []string {
	cur := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	var out []string
	for !cur.After(end) {
		out = append(out, cur.Format(model.MonthFormat))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// MonthlyFlow aggregates one month's gross income and expense.
type MonthlyFlow struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// ComputeMonthlyIncomeExpense buckets transactions by calendar month.
// Deposit/Income/Sell count as income, Withdraw/Expense/Buy as expense,
// both at the gross amount: fee and tax are not netted out here, unlike the
// balance and net-worth computations. Only months that have transactions
// appear, in ascending order.
func ComputeMonthlyIncomeExpense(transactions []model.Transaction, accounts []model.Account, settings model.Settings) []MonthlyFlow {
	currencies := make(map[string]model.Currency, len(accounts))
	for _, a := range accounts {
		currencies[a.ID] = a.Currency
	}

	byMonth := make(map[string]*MonthlyFlow)
	for _, t := range transactions {
		cur, ok := currencies[t.AccountID]
		if !ok {
			continue
		}
		key := t.Date.MonthKey()
		flow, ok := byMonth[key]
		if !ok {
			flow = &MonthlyFlow{Month: key}
			byMonth[key] = flow
		}
		gross := Convert(t.Amount.Decimal, cur, settings)
		if t.Kind.Inflow() {
			flow.Income = flow.Income.Add(gross)
		} else {
			flow.Expense = flow.Expense.Add(gross)
		}
	}

	out := make([]MonthlyFlow, 0, len(byMonth))
	for _, f := range byMonth {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
